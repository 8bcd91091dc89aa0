// Command chaptercheck validates chapter files.
//
// Usage:
//
//	chaptercheck internal/content/chapters/*.yaml
//
// It exits non-zero when any file fails to parse or has a fatal issue.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tatianab/terminal-shadows/internal/content"
)

func main() {
	strict := flag.Bool("strict", false, "treat warnings as failures")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: chaptercheck [-strict] chapter.yaml...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	failed := false
	for _, path := range flag.Args() {
		issues, err := content.CheckFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
			continue
		}
		if len(issues) == 0 {
			fmt.Printf("%s: ok\n", path)
			continue
		}
		for _, issue := range issues {
			level := "warning"
			if issue.Fatal {
				level = "error"
			}
			fmt.Printf("%s: %s: %s\n", path, level, issue)
		}
		failed = failed || content.HasFatal(issues) || *strict
	}
	if failed {
		os.Exit(1)
	}
}
