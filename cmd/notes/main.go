// Command notes is a small CLI over the client package. Each invocation logs
// in, performs one operation, and exits; the session cookie lives only for the
// lifetime of the process.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/Amke0501/Private-Notes-App/client"
)

const usage = `usage: notes [flags] <command> [args]

commands:
  signup                      create an account
  me                          show the logged-in user
  list                        list notes, newest first
  add <title> <content>       create a note
  update <id> <title> <content>  update a note
  rm <id>                     delete a note

flags:
`

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "API base URL")
	email := flag.String("email", os.Getenv("NOTES_EMAIL"), "account email")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 || *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*serverURL, *email, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(serverURL, email string, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c, err := client.New(serverURL)
	if err != nil {
		return err
	}
	session := client.NewSession(c)

	password, err := readPassword()
	if err != nil {
		return err
	}

	command := args[0]

	if command == "signup" {
		user, err := session.Signup(ctx, email, password)
		if err != nil {
			return err
		}
		fmt.Printf("account created: %s (%s)\n", user.Email, user.ID)
		return nil
	}

	if _, err := session.Login(ctx, email, password); err != nil {
		return err
	}
	defer session.Logout(ctx)

	switch command {
	case "me":
		user := session.CurrentUser()
		fmt.Printf("%s (%s), member since %s\n", user.Email, user.ID, user.CreatedAt.Format("2006-01-02"))

	case "list":
		notes, err := c.ListNotes(ctx)
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			fmt.Println("no notes")
			return nil
		}
		for _, n := range notes {
			fmt.Printf("%s  %s  %s\n", n.ID, n.UpdatedAt.Format(time.RFC3339), n.Title)
		}

	case "add":
		if len(args) != 3 {
			return fmt.Errorf("add needs <title> and <content>")
		}
		note, err := c.CreateNote(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Printf("created %s\n", note.ID)

	case "update":
		if len(args) != 4 {
			return fmt.Errorf("update needs <id>, <title> and <content>")
		}
		note, err := c.UpdateNote(ctx, args[1], args[2], args[3])
		if err != nil {
			return err
		}
		fmt.Printf("updated %s\n", note.ID)

	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("rm needs <id>")
		}
		if err := c.DeleteNote(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("deleted")

	default:
		return fmt.Errorf("unknown command %q", command)
	}

	return nil
}

func readPassword() (string, error) {
	if pw := os.Getenv("NOTES_PASSWORD"); pw != "" {
		return pw, nil
	}
	fmt.Fprint(os.Stderr, "password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}
