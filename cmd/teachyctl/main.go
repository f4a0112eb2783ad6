// Copyright (c) 2026 TeachyAI. All rights reserved.

// Command teachyctl is an interactive terminal client for the TeachyAI API,
// built on the public SDK. It is mainly used against staging environments
// to exercise the session flows end to end.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/teachyai/teachy/client"
)

func main() {
	baseURL := flag.String("server", "http://localhost:8080", "API base URL")
	flag.Parse()

	app := &app{
		reader: bufio.NewReader(os.Stdin),
	}

	storage, err := newFileStorage()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot open session storage:", err)
		os.Exit(1)
	}

	api := client.New(*baseURL)
	app.store = client.NewSessionStore(api, client.WithStorage(storage))

	// Resolve the persisted session before showing the prompt.
	state := app.store.Init(context.Background())
	fmt.Printf("teachyctl connected to %s (%s)\n", *baseURL, state)
	fmt.Println("type 'help' for commands")

	app.run()
}

type app struct {
	store  *client.SessionStore
	reader *bufio.Reader
}

func (a *app) run() {
	for {
		fmt.Printf("teachy %s > ", a.prompt())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			break
		}

		switch strings.TrimSpace(line) {
		case "":
			continue
		case "help":
			fmt.Println("commands: register, login, whoami, logout, delete-account, exit")
		case "register":
			a.register()
		case "login":
			a.login()
		case "whoami":
			a.whoami()
		case "logout":
			a.logout()
		case "delete-account":
			a.deleteAccount()
		case "exit", "quit":
			fmt.Println("bye")
			return
		default:
			fmt.Println("unknown command; type 'help'")
		}
	}
}

func (a *app) prompt() string {
	if credentials := a.store.Current(); credentials != nil {
		return credentials.User.Email
	}
	return "(signed out)"
}

// readLine prints a prompt and reads one trimmed line.
func (a *app) readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := a.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads a password without echo.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(password), nil
}

func (a *app) register() {
	identifier, err := a.readLine("email or phone: ")
	if err != nil {
		return
	}
	password, err := readPassword("password: ")
	if err != nil {
		fmt.Println(err)
		return
	}

	// Onboarding questionnaire; every answer is optional.
	draft := client.NewDraft()
	if challenge, err := a.readLine("what do you want help with? "); err == nil {
		draft.SetChallenge(challenge)
	}
	if job, err := a.readLine("your role (e.g. teacher, trainee): "); err == nil {
		draft.SetJob(job)
	}
	if subjects, err := a.readLine("subjects you teach (comma separated): "); err == nil {
		draft.SetSubjects(subjects)
	}

	user, err := a.store.SignUp(context.Background(), identifier, password, draft.Snapshot())
	if err != nil {
		fmt.Println("registration failed:", err)
		return
	}

	if !user.IsVerified {
		fmt.Println("account created; confirm the code sent to your phone, then login")
		return
	}
	fmt.Println("account created and signed in as", user.Email)
}

func (a *app) login() {
	identifier, err := a.readLine("email or phone: ")
	if err != nil {
		return
	}
	password, err := readPassword("password: ")
	if err != nil {
		fmt.Println(err)
		return
	}

	credentials, err := a.store.SignIn(context.Background(), identifier, password)
	if err != nil {
		switch {
		case errors.Is(err, client.ErrInvalidCredentials):
			fmt.Println("invalid email/phone or password")
		case errors.Is(err, client.ErrEmailNotConfirmed):
			fmt.Println("account not verified yet; complete the code verification first")
		default:
			fmt.Println("login failed:", err)
		}
		return
	}

	fmt.Println("signed in as", credentials.User.Email)
}

func (a *app) whoami() {
	credentials := a.store.Current()
	if credentials == nil {
		fmt.Println("not signed in")
		return
	}
	fmt.Printf("%s (role %s, verified %v)\n",
		credentials.User.Email, credentials.User.Role, credentials.User.IsVerified)
}

func (a *app) logout() {
	// Local state clears even when the server call fails.
	if err := a.store.SignOut(context.Background()); err != nil {
		fmt.Println("signed out locally; server revocation failed:", err)
		return
	}
	fmt.Println("signed out")
}

func (a *app) deleteAccount() {
	confirmation, err := a.readLine("this permanently deletes your account; type DELETE to confirm: ")
	if err != nil || confirmation != "DELETE" {
		fmt.Println("aborted")
		return
	}

	if err := a.store.DeleteAccount(context.Background()); err != nil {
		fmt.Println("deletion failed, account unchanged:", err)
		return
	}
	fmt.Println("account deleted")
}

// # Session Persistence

// fileStorage keeps the session slot in ~/.teachy/session.json so the CLI
// stays signed in across invocations.
type fileStorage struct {
	path string
}

func newFileStorage() (*fileStorage, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	directory := filepath.Join(home, ".teachy")
	if err := os.MkdirAll(directory, 0o700); err != nil {
		return nil, err
	}

	return &fileStorage{path: filepath.Join(directory, "session.json")}, nil
}

func (storage *fileStorage) Load() (*client.Credentials, error) {
	raw, err := os.ReadFile(storage.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var credentials client.Credentials
	if err := json.Unmarshal(raw, &credentials); err != nil {
		return nil, err
	}
	return &credentials, nil
}

func (storage *fileStorage) Save(credentials *client.Credentials) error {
	raw, err := json.Marshal(credentials)
	if err != nil {
		return err
	}
	return os.WriteFile(storage.path, raw, 0o600)
}

func (storage *fileStorage) Clear() error {
	if err := os.Remove(storage.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
