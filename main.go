package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/inventaris/panel/config"
	"github.com/inventaris/panel/database"
	"github.com/inventaris/panel/database/model"
	"github.com/inventaris/panel/logger"
	"github.com/inventaris/panel/web"
	"github.com/inventaris/panel/web/cache"
	"github.com/inventaris/panel/web/service"

	"github.com/spf13/cobra"
)

func initLogger() {
	level, err := logger.ParseLevel(config.GetLogLevel())
	if err != nil {
		log.Fatal(err)
	}
	logger.InitLogger(level)
}

func initDB() error {
	return database.InitDB(config.GetDatabaseConfig())
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	initLogger()
	defer logger.CloseLogger()

	if err := initDB(); err != nil {
		log.Fatal(err)
	}
	defer database.CloseDB()

	if err := cache.InitRedis(config.GetRedisAddr()); err != nil {
		log.Fatal(err)
	}
	defer cache.Close()

	server := web.NewServer()
	if err := server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, os.Interrupt)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("Received SIGHUP, restarting web server")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			if err := server.Start(); err != nil {
				log.Println(err)
				return
			}
		default:
			logger.Info("Shutting down")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

func migrateDb() {
	initLogger()
	if err := initDB(); err != nil {
		log.Fatal(err)
	}
	defer database.CloseDB()
	fmt.Println("Migration done")
}

func createAdmin(name, email, password string) {
	if email == "" || password == "" {
		fmt.Println("email and password are required")
		os.Exit(1)
	}
	if err := initDB(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer database.CloseDB()

	userService := service.UserService{}
	user, err := userService.EnsureAdmin(context.Background(), name, email, password)
	if err != nil {
		if ve, ok := service.IsValidation(err); ok {
			err = ve
		}
		fmt.Println("create admin failed:", err)
		os.Exit(1)
	}
	fmt.Printf("admin %s <%s> ready (uuid %s)\n", user.Name, user.Email, user.Uuid)
}

func showAdmins() {
	if err := initDB(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer database.CloseDB()

	userService := service.UserService{}
	users, err := userService.List(context.Background())
	if err != nil {
		fmt.Println("list users failed:", err)
		os.Exit(1)
	}
	fmt.Println("current admins:")
	for _, u := range users {
		if r, _ := model.ParseRole(u.Role); r == model.RoleAdmin {
			fmt.Printf("  %s <%s> %s\n", u.Name, u.Email, u.Uuid)
		}
	}
	fmt.Println("port:", config.GetPort())
	fmt.Println("base path:", config.GetBasePath())
}

func main() {
	config.LoadEnv()

	var rootCmd = &cobra.Command{
		Use: config.GetName(),
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Run: func(cmd *cobra.Command, args []string) {
			migrateDb()
		},
	}

	var adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	var createCmd = &cobra.Command{
		Use:   "create",
		Short: "Create an admin, or promote and reset an existing account",
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			createAdmin(name, email, password)
		},
	}

	createCmd.Flags().String("name", "Administrator", "set display name")
	createCmd.Flags().String("email", "", "set login email")
	createCmd.Flags().String("password", "", "set login password")

	var showCmd = &cobra.Command{
		Use:   "show",
		Short: "Show admin accounts and listen settings",
		Run: func(cmd *cobra.Command, args []string) {
			showAdmins()
		},
	}

	adminCmd.AddCommand(createCmd, showCmd)
	rootCmd.AddCommand(runCmd, migrateCmd, adminCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
