package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"library-catalog/library"
)

var borrowCmd = &cobra.Command{
	Use:   "borrow <user-id> <book-id>",
	Short: "Check a book out to a user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user ID: %s", args[0])
		}
		bookID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid book ID: %s", args[1])
		}
		return withLibrary(func(lib *library.Library) error {
			if err := lib.Borrow(userID, bookID); err != nil {
				return err
			}
			book, _ := lib.GetBook(bookID)
			user, _ := lib.GetUser(userID)
			fmt.Printf("Book '%s' checked out to %s\n", book.Title, user.Name)
			return nil
		})
	},
}

var returnCmd = &cobra.Command{
	Use:   "return <book-id>",
	Short: "Return a borrowed book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bookID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid book ID: %s", args[0])
		}
		return withLibrary(func(lib *library.Library) error {
			if err := lib.Return(bookID); err != nil {
				return err
			}
			book, _ := lib.GetBook(bookID)
			fmt.Printf("Book '%s' returned and available again\n", book.Title)
			return nil
		})
	},
}

var loansUserID int64

var loansCmd = &cobra.Command{
	Use:   "loans",
	Short: "List active checkouts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLibrary(func(lib *library.Library) error {
			if loansUserID != 0 {
				books, err := lib.BorrowedBy(loansUserID)
				if err != nil {
					return err
				}
				if len(books) == 0 {
					fmt.Printf("No borrowed books for user %d.\n", loansUserID)
					return nil
				}
				printBookTable(books)
				return nil
			}

			recs := lib.Checkouts()
			if len(recs) == 0 {
				fmt.Println("No active checkouts.")
				return nil
			}
			fmt.Printf("%-7s %-30s %-25s %-20s\n", "Book", "Title", "Borrower", "Borrowed At")
			fmt.Println(strings.Repeat("-", 85))
			for _, rec := range recs {
				title := ""
				if book, err := lib.GetBook(rec.BookID); err == nil {
					title = book.Title
				}
				borrower := fmt.Sprintf("ID: %d", rec.UserID)
				if user, err := lib.GetUser(rec.UserID); err == nil {
					borrower = fmt.Sprintf("%s (ID: %d)", user.Name, user.ID)
				}
				fmt.Printf("%-7d %-30s %-25s %-20s\n",
					rec.BookID, truncateString(title, 30), truncateString(borrower, 25),
					rec.BorrowedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		})
	},
}

func init() {
	loansCmd.Flags().Int64Var(&loansUserID, "user", 0, "only show loans held by this user")
	rootCmd.AddCommand(borrowCmd, returnCmd, loansCmd)
}
