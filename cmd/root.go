package cmd

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"library-catalog/library"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:           "libcat",
	Short:         "Library catalog manager",
	Long:          "libcat manages a small library catalog: books, users, and checkouts.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "library.db", "path to the catalog database")
	rootCmd.AddCommand(statsCmd)
}

// withLibrary loads the library from the store, applies fn, and persists
// the result. An error from fn skips the save so failed operations leave
// the stored state untouched.
func withLibrary(fn func(*library.Library) error) error {
	store, err := library.OpenStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	lib, err := store.Load()
	if err != nil {
		return err
	}
	if err := fn(lib); err != nil {
		return err
	}
	return store.Save(lib)
}

// readToken securely reads a credential token with masking.
func readToken(prompt string) (string, error) {
	fmt.Print(prompt)
	byteToken, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(byteToken)), nil
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show book, user, and loan counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLibrary(func(lib *library.Library) error {
			st := lib.Stats()
			fmt.Printf("Total Books:     %d\n", st.Books)
			fmt.Printf("Available Books: %d\n", st.Available)
			fmt.Printf("Borrowed Books:  %d\n", st.Borrowed)
			fmt.Printf("Total Users:     %d\n", st.Users)
			return nil
		})
	},
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}

func printBookTable(books []*library.Book) {
	if len(books) == 0 {
		fmt.Println("No books.")
		return
	}
	fmt.Printf("%-5s %-30s %-25s %-6s %-10s\n", "ID", "Title", "Author", "Year", "Available")
	fmt.Println(strings.Repeat("-", 80))
	for _, b := range books {
		availStr := "Yes"
		if !b.Available {
			availStr = "No"
		}
		year := ""
		if b.Year != 0 {
			year = fmt.Sprintf("%d", b.Year)
		}
		fmt.Printf("%-5d %-30s %-25s %-6s %-10s\n",
			b.ID, truncateString(b.Title, 30), truncateString(b.Author, 25), year, availStr)
	}
}
