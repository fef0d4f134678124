package reader_test

import (
	"testing"

	"github.com/thomasrohde/scheme0/pkg/lexer"
	"github.com/thomasrohde/scheme0/pkg/printer"
	"github.com/thomasrohde/scheme0/pkg/reader"
)

// FuzzRead feeds random inputs through the lexer and reader to catch panics.
// Reading should either produce a printable expression or return an error.
func FuzzRead(f *testing.F) {
	seeds := []string{
		`42`,
		`#t`,
		`foo`,
		`()`,
		`(+ 1 2)`,
		`(1 2 . 3)`,
		`'(1 2)`,
		`''x`,
		`(define (fact n) (if (= n 0) 1 (* n (fact (- n 1)))))`,
		`(lambda (x) (+ 1 x))`,
		`(`,
		`)`,
		`.`,
		`'`,
		`(1 .`,
		`(. .)`,
		`((((((((((1))))))))))`,
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Read panicked on input %q: %v", input, r)
			}
		}()

		tz, err := lexer.New(input, "fuzz.scm")
		if err != nil {
			return
		}
		expr, err := reader.Read(tz)
		if err != nil {
			return
		}
		// Anything the reader accepts must render without panicking.
		_ = printer.Print(expr)
	})
}
