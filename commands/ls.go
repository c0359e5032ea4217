package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/josephlewis42/ezh/core/vos"
	"github.com/spf13/afero"
)

// BytesToHuman formats a size with a unit suffix.
func BytesToHuman(bytes int64) string {
	for _, e := range []struct {
		unit  string
		power int64
	}{
		{"P", 1e15},
		{"T", 1e12},
		{"G", 1e9},
		{"M", 1e6},
		{"K", 1e3},
	} {
		quotient := bytes / e.power
		switch {
		case quotient == 0:
			continue
		case quotient > 10:
			return fmt.Sprintf("%d%s", quotient, e.unit)
		default:
			return fmt.Sprintf("%0.1f%s", float64(bytes)/float64(e.power), e.unit)
		}
	}

	return fmt.Sprintf("%d", bytes)
}

// Ls lists a directory, one entry per line, sorted without regard to case.
func Ls(proc *vos.Process) int {
	cmd := &SimpleCommand{
		Use:   "ls [-alh] [PATH]",
		Short: "List the entries of PATH, the working directory by default.",
	}

	opts := cmd.Flags()
	listAll := opts.Bool('a', "don't ignore entries starting with .")
	longListing := opts.Bool('l', "use a long listing format")
	humanSize := opts.Bool('h', "print human readable sizes")

	var printer ColorPrinter
	printer.Init(opts)

	return cmd.Run(proc, func() int {
		args := cmd.Args()
		if len(args) > 1 {
			fmt.Fprintln(proc.Stderr(), "ls: expected one or zero arguments")
			return 1
		}

		target := "."
		if len(args) == 1 {
			target = args[0]
		}

		info, err := proc.Fs().Stat(proc.Abs(target))
		if err != nil {
			fmt.Fprintf(proc.Stderr(), "ls: %s: no such file or directory\n", target)
			return 1
		}
		if !info.IsDir() {
			fmt.Fprint(proc.Stdout(), target)
			return 0
		}

		entries, err := afero.ReadDir(proc.Fs(), proc.Abs(target))
		if err != nil {
			fmt.Fprintf(proc.Stderr(), "ls: %s: %v\n", target, err)
			return 1
		}

		var paths []os.FileInfo
		for _, entry := range entries {
			if !*listAll && strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			paths = append(paths, entry)
		}
		sort.SliceStable(paths, func(i, j int) bool {
			return strings.ToLower(paths[i].Name()) < strings.ToLower(paths[j].Name())
		})

		sizeFmt := func(bytes int64) string {
			return fmt.Sprintf("%d", bytes)
		}
		if *humanSize {
			sizeFmt = BytesToHuman
		}

		var lines []string
		for _, f := range paths {
			name := printer.Sprintf(Dircolor(f), "%s", f.Name())
			if *longListing {
				name = fmt.Sprintf("%s\t%s\t%s\t%s",
					f.Mode().String(),
					sizeFmt(f.Size()),
					f.ModTime().Format("Jan _2 15:04"),
					name)
			}
			lines = append(lines, name)
		}

		tw := tabwriter.NewWriter(proc.Stdout(), 0, 0, 1, ' ', 0)
		fmt.Fprint(tw, strings.Join(lines, "\n"))
		tw.Flush()
		return 0
	})
}

var _ vos.ProcessFunc = Ls

type LsColorTest struct {
	color *color.Color
	test  func(fileInfo os.FileInfo) bool
}

var archiveExtensions = map[string]bool{
	"tar": true,
	"tgz": true,
	"zip": true,
	"gz":  true,
	"bz2": true,
	"bz":  true,
	"tbz": true,
	"deb": true,
	"rpm": true,
	"jar": true,
	"war": true,
	"rar": true,
}

// Color listing comes from: https://askubuntu.com/a/884513
var dircolors = []LsColorTest{
	// Directories are bold blue.
	{color: ColorBoldBlue, test: os.FileInfo.IsDir},
	// Symlinks are bold cyan.
	{color: ColorBoldCyan, test: func(fi os.FileInfo) bool {
		return fi.Mode()&fs.ModeSymlink > 0
	}},
	// Yellow with black background pipe, block device, char device.
	{color: color.New(color.FgYellow, color.BgBlack, color.Bold), test: func(fi os.FileInfo) bool {
		return fi.Mode()&(fs.ModeDevice|fs.ModeNamedPipe|fs.ModeSocket|fs.ModeCharDevice) > 0
	}},
	// Executables are bold green.
	{color: ColorBoldGreen, test: func(fi os.FileInfo) bool {
		return fi.Mode().Perm()&0111 > 0
	}},
	// Archives are bold red.
	{color: ColorBoldRed, test: func(fi os.FileInfo) bool {
		return archiveExtensions[strings.TrimPrefix(path.Ext(fi.Name()), ".")]
	}},
}

func Dircolor(fileInfo os.FileInfo) *color.Color {
	for _, dc := range dircolors {
		if dc.test(fileInfo) {
			return dc.color
		}
	}

	// Anything else defaults to white.
	return color.New(color.FgHiWhite)
}

func init() {
	addCmd(Ls, "ls")
}
