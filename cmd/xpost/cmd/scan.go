package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/scanner"
	"github.com/cwbudde/go-xpost/internal/xpostio"
	"github.com/spf13/cobra"
)

var scanEvalExpr string

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Tokenize a PostScript file or expression",
	Long: `Tokenize a PostScript program and print the resulting tokens, without
executing them. Useful for debugging the scanner and its literal/executable
distinction.`,
	Args: cobra.MaximumNArgs(1),
	RunE: scanScript,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVarP(&scanEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
}

func scanScript(_ *cobra.Command, args []string) error {
	var input string
	switch {
	case scanEvalExpr != "":
		input = scanEvalExpr
	case len(args) == 1:
		text, err := xpostio.DecodeFile(args[0])
		if err != nil {
			return err
		}
		input = text
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	// A throwaway Context is enough to intern names: scanning never touches
	// the dictionary or operand stacks.
	ctx, err := pscontext.New(1<<16, 1<<14)
	if err != nil {
		return err
	}

	sc := scanner.New(input)
	count := 0
	for {
		tok, ok, err := sc.Next(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "scan error: %v\n", err)
			return err
		}
		if !ok {
			break
		}
		count++
		printToken(ctx, tok)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "%d token(s)\n", count)
	}
	return nil
}

func printToken(ctx *pscontext.Context, tok object.Object) {
	switch tok.Tag {
	case object.Integer:
		fmt.Printf("[integer]  %d\n", tok.Int)
	case object.Real:
		fmt.Printf("[real]     %g\n", tok.Float)
	case object.Name:
		mark := "executable"
		if !tok.Exec {
			mark = "literal"
		}
		fmt.Printf("[name %-10s] %s\n", mark, ctx.Names.NameBytes(tok))
	case object.Mark:
		fmt.Println("[mark]")
	default:
		fmt.Printf("[%s]\n", tok.Tag.String())
	}
}
