package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"inkwell/app/routes"

	"github.com/dgraph-io/badger/v4"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("inkwell version %s\n", cliVersion)
	case "serve":
		serve(os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: inkwell <command> [options]
Commands:
  help                 Display this help message.
  version              Show version information.
  serve [options]      Run the blog web application.
                         --addr           listen address (default :8080, env INKWELL_ADDR)
                         --db             Badger database path (default data/badger, env INKWELL_DB_PATH)
                         --session-hours  session lifetime in hours (default 72)
`
	fmt.Println(helpText)
}

// serve opens the database, wires the routes and runs the HTTP server.
func serve(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", envOr("INKWELL_ADDR", ":8080"), "listen address")
	dbPath := fs.String("db", envOr("INKWELL_DB_PATH", "data/badger"), "Badger database path")
	sessionHours := fs.Int("session-hours", 72, "session lifetime in hours")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("Failed to parse flags: %v", err)
	}

	opts := badger.DefaultOptions(*dbPath).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open Badger DB: %v", err)
	}
	defer db.Close()

	router := routes.Setup(db, "", time.Duration(*sessionHours)*time.Hour)

	log.Printf("Starting blog on %s", *addr)
	if err := routes.StartServer(*addr, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
