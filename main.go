package main

import (
	"flag"
	"fmt"
	"os"

	"member-profile/config"
	"member-profile/models"
	"member-profile/server"

	_ "github.com/mattn/go-sqlite3"
	"github.com/umakantv/go-utils/db/migrations"
)

func main() {
	commandFlag := flag.String("command", "start", "Command to run modules")
	nameFlag := flag.String("name", "", "Migration name (alphanum+underscore only)")
	dirFlag := flag.String("dir", ".", "Target directory for the new .sql file (e.g. ./migrations)")

	// create-member options
	nmFlag := flag.String("nm", "", "Display name")
	birthFlag := flag.String("birth", "", "Birth date")
	bloodFlag := flag.String("blood", "", "Blood type")
	phoneFlag := flag.String("phone", "", "Phone")
	emailFlag := flag.String("email", "", "Email")
	idnoFlag := flag.String("idno", "", "Login id")
	pwdFlag := flag.String("pwd", "", "Password (stored as plaintext)")
	flag.Parse()

	if *commandFlag == "" {
		fmt.Println("Usage: go run main.go --command <command-name> [... other options]")
		os.Exit(1)
	}

	cfg := config.Load()

	switch *commandFlag {
	case "start":
		server.StartServer(cfg)
	case "create-migration":
		migrations.CreateMigration(nameFlag, dirFlag)
	case "create-member":
		server.CreateMember(cfg, models.MemberFields{
			Name:  *nmFlag,
			Birth: *birthFlag,
			Blood: *bloodFlag,
			Phone: *phoneFlag,
			Email: *emailFlag,
			IDNo:  *idnoFlag,
			Pwd:   *pwdFlag,
		})
	default:
		fmt.Printf("Unknown command %q\n", *commandFlag)
		os.Exit(1)
	}
}
