package merge

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Directories lists the per-source folders inside a Combine directory, in
// the order their files are concatenated.
var Directories = []string{
	"HASTUS_export",
	"ArborTest",
	"SohamTest",
	"CabotTest",
	"BennttTest",
	"SomvlTest",
	"CharlTest",
	"AlbanTest",
	"FellsTest",
	"QuinTest",
	"LynnTest",
	"SohamDR",
}

// Extensions lists the export file types that get merged, one output file
// per type.
var Extensions = []string{"nde", "plc", "rte", "trp", "pat", "ppat", "blk", "crw"}

// InsensitiveGlob converts an extension to a case-insensitive glob
// pattern ("nde" -> "*.[nN][dD][eE]").
func InsensitiveGlob(extension string) string {
	var b strings.Builder
	b.WriteString("*.")
	for _, r := range extension {
		fmt.Fprintf(&b, "[%s%s]", strings.ToLower(string(r)), strings.ToUpper(string(r)))
	}
	return b.String()
}

// FastMerge concatenates the input files into the output file, appending
// extra (if any) at the end.
func FastMerge(inputs []string, output string, extra string) error {
	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer out.Close()

	for _, input := range inputs {
		in, err := os.Open(input)
		if err != nil {
			return err
		}
		_, err = io.Copy(out, in)
		in.Close()
		if err != nil {
			return err
		}
	}

	if extra != "" {
		if _, err := out.WriteString(extra); err != nil {
			return err
		}
	}
	return out.Close()
}

// MergeExtension merges the files with the given extension from every
// source directory under path into <prefix>.<extension>.
//
// Merged .blk files get a trailing VSC line naming the rating, replacing
// the old signup.blk behavior.
func MergeExtension(path, prefix, extension string) error {
	var files []string
	for _, directory := range Directories {
		matches, err := filepath.Glob(filepath.Join(path, directory, InsensitiveGlob(extension)))
		if err != nil {
			return err
		}
		sort.Slice(matches, func(i, j int) bool {
			return strings.ToLower(filepath.Base(matches[i])) < strings.ToLower(filepath.Base(matches[j]))
		})
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no .%s files found under %s", extension, path)
	}

	extra := ""
	if extension == "blk" {
		extra = fmt.Sprintf("VSC;        ;          ;  ;  ;%s;        ;%s\n",
			prefix, strings.Repeat(" ", 40))
	}

	output := filepath.Join(path, prefix+"."+extension)
	return FastMerge(files, output, extra)
}

// MergeCombine merges every extension inside the given Combine directory.
// The output file prefix is the name of the parent (rating) directory.
func MergeCombine(path string) error {
	prefix := filepath.Base(filepath.Dir(filepath.Clean(path)))
	for _, extension := range Extensions {
		if err := MergeExtension(path, prefix, extension); err != nil {
			return err
		}
	}
	return nil
}

// Combine validates that path is a Combine directory and merges it.
func Combine(path string) error {
	if !strings.EqualFold(filepath.Base(filepath.Clean(path)), "combine") {
		return fmt.Errorf("expected a Combine directory, got %s", path)
	}
	return MergeCombine(path)
}

var datedName = regexp.MustCompile(`^(.*)-(\d{8})$`)

// DedupPrefix keeps only the newest file per "<name>-DDMMYYYY" prefix,
// preserving the order prefixes first appear in. Names without a date
// suffix pass through unchanged.
func DedupPrefix(names []string) []string {
	type candidate struct {
		name string
		date time.Time
	}
	best := map[string]candidate{}
	var order []string

	for _, name := range names {
		key := name
		var date time.Time
		if m := datedName.FindStringSubmatch(name); m != nil {
			if parsed, err := time.Parse("02012006", m[2]); err == nil {
				key = m[1]
				date = parsed
			}
		}
		current, seen := best[key]
		if !seen {
			order = append(order, key)
		}
		if !seen || date.After(current.date) {
			best[key] = candidate{name: name, date: date}
		}
	}

	deduped := make([]string, 0, len(order))
	for _, key := range order {
		deduped = append(deduped, best[key].name)
	}
	return deduped
}
