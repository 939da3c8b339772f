// Command dashboard is a terminal front end for the admin API. It logs in,
// fetches the user collection once, then serves every view command from the
// cached list.
package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/spec-kit/user-admin-service/internal/dashboard"
	"github.com/spec-kit/user-admin-service/internal/domain"
)

func main() {
	_ = godotenv.Load()

	baseURL := getEnv("DASHBOARD_API_URL", "http://127.0.0.1:8080")
	email := os.Getenv("DASHBOARD_EMAIL")
	password := os.Getenv("DASHBOARD_PASSWORD")
	if email == "" || password == "" {
		fmt.Fprintln(os.Stderr, "DASHBOARD_EMAIL and DASHBOARD_PASSWORD must be set")
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}
	ctx := context.Background()

	session, me, err := dashboard.Login(ctx, httpClient, baseURL, email, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("logged in as %s <%s>\n", me.Name, me.Email)

	client := dashboard.NewClient(httpClient, session)
	state := dashboard.NewListState(dashboard.DefaultPageSize)
	if err := state.Load(ctx, client, domain.FilterAll); err != nil {
		fmt.Fprintf(os.Stderr, "fetch failed: %v\n", err)
		os.Exit(1)
	}

	render(state)
	repl(ctx, client, state)
}

func repl(ctx context.Context, client *dashboard.Client, state *dashboard.ListState) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			fmt.Print("> ")
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return
		case "list":
			render(state)
		case "search":
			term := ""
			if len(fields) > 1 {
				term = strings.Join(fields[1:], " ")
			}
			state.SetSearch(term)
			render(state)
		case "sort":
			if len(fields) != 2 || (fields[1] != "name" && fields[1] != "email") {
				fmt.Println("usage: sort name|email")
				break
			}
			state.ToggleSort(dashboard.SortKey(fields[1]))
			render(state)
		case "next":
			state.NextPage()
			render(state)
		case "prev":
			state.PrevPage()
			render(state)
		case "page":
			if len(fields) != 2 {
				fmt.Println("usage: page <n>")
				break
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				fmt.Println("usage: page <n>")
				break
			}
			state.SetPage(n)
			render(state)
		case "count":
			showCounts(ctx, client)
		case "delete":
			if len(fields) != 2 {
				fmt.Println("usage: delete <id>")
				break
			}
			id, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				fmt.Println("usage: delete <id>")
				break
			}
			deleted, err := client.DeleteUser(ctx, id)
			if err != nil {
				fmt.Printf("delete failed: %v\n", err)
				break
			}
			state.ApplyDelete(deleted.ID)
			fmt.Printf("deleted %s\n", deleted.Name)
			render(state)
		case "help":
			fmt.Println("commands: list, search <term>, sort name|email, page <n>, next, prev, count, delete <id>, quit")
		default:
			fmt.Println("unknown command; try help")
		}
		fmt.Print("> ")
	}
}

func showCounts(ctx context.Context, client *dashboard.Client) {
	for _, filter := range []domain.RoleFilter{domain.FilterUsers, domain.FilterAdmins, domain.FilterAll} {
		total, err := client.Count(ctx, filter)
		if err != nil {
			fmt.Printf("count %s failed: %v\n", filter, err)
			return
		}
		fmt.Printf("%s: %d\n", filter, total)
	}
}

func render(state *dashboard.ListState) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tGENDER\tROLE")
	for _, user := range state.Visible() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", user.ID, user.Name, user.Email, user.Gender, domain.Role(user.Role))
	}
	w.Flush()
	fmt.Printf("page %d/%d (%d matching)\n", state.Page(), state.TotalPages(), len(state.Filtered()))
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
