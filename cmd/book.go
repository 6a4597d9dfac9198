package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"library-catalog/library"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Manage the book catalog",
}

var (
	addBookID     int64
	addBookTitle  string
	addBookAuthor string
	addBookYear   int
)

var bookAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book to the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLibrary(func(lib *library.Library) error {
			b := library.Book{ID: addBookID, Title: addBookTitle, Author: addBookAuthor, Year: addBookYear}
			if err := lib.AddBook(b); err != nil {
				return err
			}
			fmt.Printf("Added book %d: %s by %s\n", b.ID, b.Title, b.Author)
			return nil
		})
	},
}

var bookRemoveCmd = &cobra.Command{
	Use:   "rm <book-id>",
	Short: "Remove a book from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid book ID: %s", args[0])
		}
		return withLibrary(func(lib *library.Library) error {
			if err := lib.RemoveBook(id); err != nil {
				return err
			}
			fmt.Printf("Removed book %d\n", id)
			return nil
		})
	},
}

var listSortKey string

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all books",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLibrary(func(lib *library.Library) error {
			books, err := lib.ListSorted(library.SortKey(listSortKey))
			if err != nil {
				return err
			}
			printBookTable(books)
			return nil
		})
	},
}

var searchBy string

var bookSearchCmd = &cobra.Command{
	Use:   "search <prefix>",
	Short: "Find books by title or author prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLibrary(func(lib *library.Library) error {
			var books []*library.Book
			switch searchBy {
			case "title":
				for b := range lib.FindByTitle(args[0]) {
					books = append(books, b)
				}
			case "author":
				for b := range lib.FindByAuthor(args[0]) {
					books = append(books, b)
				}
			default:
				return fmt.Errorf("unknown search attribute %q (want title or author)", searchBy)
			}
			if len(books) == 0 {
				fmt.Printf("No books found matching '%s'.\n", args[0])
				return nil
			}
			fmt.Printf("Found %d book(s) matching '%s':\n", len(books), args[0])
			printBookTable(books)
			return nil
		})
	},
}

func init() {
	bookAddCmd.Flags().Int64Var(&addBookID, "id", 0, "book identifier")
	bookAddCmd.Flags().StringVar(&addBookTitle, "title", "", "book title")
	bookAddCmd.Flags().StringVar(&addBookAuthor, "author", "", "book author")
	bookAddCmd.Flags().IntVar(&addBookYear, "year", 0, "publication year")
	bookAddCmd.MarkFlagRequired("id")
	bookAddCmd.MarkFlagRequired("title")
	bookAddCmd.MarkFlagRequired("author")

	bookListCmd.Flags().StringVar(&listSortKey, "sort", "id", "sort key: id, title, or author")
	bookSearchCmd.Flags().StringVar(&searchBy, "by", "title", "search attribute: title or author")

	bookCmd.AddCommand(bookAddCmd, bookRemoveCmd, bookListCmd, bookSearchCmd)
	rootCmd.AddCommand(bookCmd)
}
