// Command userdirctl drives the userdir API from the terminal. It wraps the
// same client/controller pair a frontend would use.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/PabloPavan/userdir_api/internal/client"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	api := client.New()
	ctx := context.Background()

	switch os.Args[1] {
	case "list":
		runList(ctx, api)
	case "get":
		runGet(ctx, api, os.Args[2:])
	case "create":
		runCreate(ctx, api, os.Args[2:])
	case "update":
		runUpdate(ctx, api, os.Args[2:])
	case "delete":
		runDelete(ctx, api, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: userdirctl <command> [flags]

commands:
  list                                      list all users
  get    -id <id>                           show one user
  create -name <name> -email <email> [-role <role>]
  update -id <id> -name <name> -email <email> [-role <role>]
  delete -id <id>

The API base URL is read from USERDIR_API_URL (default `+client.DefaultBaseURL+`).`)
}

func runList(ctx context.Context, api *client.Client) {
	ctl := client.NewController(api)
	ctl.Refresh(ctx)
	if ctl.Status != "" {
		fatal(ctl.Status)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tCREATED")
	for _, u := range ctl.Users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, u.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	w.Flush()
}

func runGet(ctx context.Context, api *client.Client, args []string) {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	id := fs.String("id", "", "user id")
	fs.Parse(args)
	if *id == "" {
		fatal("get: -id is required")
	}

	u, err := api.Get(ctx, *id)
	if err != nil {
		fatal(err.Error())
	}
	fmt.Printf("%s  %s <%s>  role=%s\n", u.ID, u.Name, u.Email, u.Role)
}

func runCreate(ctx context.Context, api *client.Client, args []string) {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	name := fs.String("name", "", "user name")
	email := fs.String("email", "", "user email")
	role := fs.String("role", "", "user role (default \"user\")")
	fs.Parse(args)

	ctl := client.NewController(api)
	ctl.Form = client.FormState{Name: *name, Email: *email, Role: *role}
	ctl.Submit(ctx)
	fmt.Println(ctl.Status)
	if ctl.Status != "User created." {
		os.Exit(1)
	}
}

func runUpdate(ctx context.Context, api *client.Client, args []string) {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.String("id", "", "user id")
	name := fs.String("name", "", "user name")
	email := fs.String("email", "", "user email")
	role := fs.String("role", "", "user role")
	fs.Parse(args)
	if *id == "" {
		fatal("update: -id is required")
	}

	u, err := api.Get(ctx, *id)
	if err != nil {
		fatal(err.Error())
	}

	ctl := client.NewController(api)
	ctl.BeginEdit(*u)
	if *name != "" {
		ctl.Form.Name = *name
	}
	if *email != "" {
		ctl.Form.Email = *email
	}
	if *role != "" {
		ctl.Form.Role = *role
	}
	ctl.Submit(ctx)
	fmt.Println(ctl.Status)
	if ctl.Status != "User updated." {
		os.Exit(1)
	}
}

func runDelete(ctx context.Context, api *client.Client, args []string) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "user id")
	fs.Parse(args)
	if *id == "" {
		fatal("delete: -id is required")
	}

	ctl := client.NewController(api)
	ctl.Remove(ctx, *id)
	fmt.Println(ctl.Status)
	if ctl.Status != "User removed." {
		os.Exit(1)
	}
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
