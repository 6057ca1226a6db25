package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/badoux/checkmail"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"holdemtables-server/internal/config"
	"holdemtables-server/pkg/table"
)

var command = flag.String("c", "user", "specifies the command (user, credit)")

func main() {
	flag.Parse()

	switch *command {
	case "user":
		createUser()
	case "credit":
		creditChips()
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func createUser() {
	email := getEmail()
	if email == "" {
		os.Exit(1)
	}

	password := getPassword()
	if password == "" {
		os.Exit(1)
	}

	startingBalance := config.Instance().Game.BuyIn * 10
	player, err := table.CreatePlayer(context.Background(), email, "Admin", password, "127.0.0.1", startingBalance)
	if err != nil {
		logrus.WithError(err).Fatal("could not create player")
	}

	fmt.Printf("Created user %d\n", player.ID)

	name, err := getInput("Name")
	if err != nil {
		logrus.WithError(err).Fatal("could not get answer")
	}

	if name != "" {
		player.DisplayName = name
		if err := player.Save(context.Background()); err != nil {
			logrus.WithError(err).Fatal("could not save player")
		}
	}

	promote, err := getInput("Make admin (Y/n)")
	if err != nil {
		logrus.WithError(err).Fatal("could not get answer")
	}

	if promote == "" || strings.ToLower(promote)[0] == 'y' {
		if err := player.SetIsSiteAdmin(context.Background(), true); err != nil {
			logrus.WithError(err).Fatal("could not promote user to admin")
		}

		fmt.Printf("User promoted to admin\n")
	}
}

func creditChips() {
	email := getEmail()
	if email == "" {
		os.Exit(1)
	}

	player, err := table.GetPlayerByEmail(context.Background(), email)
	if err != nil {
		logrus.WithError(err).Fatal("could not find player")
	}

	input, err := getInput("Amount")
	if err != nil {
		logrus.WithError(err).Fatal("could not get answer")
	}

	amount, err := strconv.Atoi(input)
	if err != nil || amount == 0 {
		logrus.Fatal("amount must be a non-zero integer")
	}

	if err := player.AdjustBalance(context.Background(), amount); err != nil {
		logrus.WithError(err).Fatal("could not adjust balance")
	}

	fmt.Printf("Adjusted balance of player %d by %d\n", player.ID, amount)
}

func getPassword() string {
	for {
		fmt.Print("Password: ")
		pwBytes, err := term.ReadPassword(0)
		if err != nil {
			continue
		}
		fmt.Println("")

		password := strings.TrimRight(string(pwBytes), "\r\n")

		if password == "" {
			return ""
		}

		if len(password) < 6 {
			_, _ = fmt.Fprintf(os.Stderr, "password must be 6 or more characters\n")
			continue
		}

		return password
	}
}

func getEmail() string {
	for {
		fmt.Print("Email: ")
		reader := bufio.NewReader(os.Stdin)
		str, err := reader.ReadString('\n')
		if err != nil {
			logrus.WithError(err).Warn("could not read email")
		}

		str = strings.TrimRight(str, "\r\n")

		if str == "" {
			return ""
		}

		if err := checkmail.ValidateFormat(str); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			continue
		}

		return str
	}
}

func getInput(question string) (string, error) {
	fmt.Printf("%s: ", question)
	reader := bufio.NewReader(os.Stdin)
	str, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	str = strings.TrimRight(str, "\r\n")

	return str, nil
}
