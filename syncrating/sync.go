package syncrating

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rating-manager/rating"
	"rating-manager/rating/calendar"
	"rating-manager/rating/hastus"
	"rating-manager/rating/merge"
	"rating-manager/rating/seasons"
	"rating-manager/rating/validate"
)

const (
	svcDescPath       = "Operational Data/Route Data/Current_Release/Routes/svc-desc.txt"
	announcementsPath = "Operational Data/Announcements/Current_Release"
)

// Syncer assembles a rating locally from the HASTUS export share and
// pushes it to the TransitMaster server.
type Syncer struct {
	cfg     Config
	log     *zap.Logger
	hastus  Share
	ratings Share
	prior   Share
}

// New returns a Syncer over the three shares.
func New(cfg Config, log *zap.Logger, hastus, ratings, prior Share) *Syncer {
	return &Syncer{cfg: cfg, log: log, hastus: hastus, ratings: ratings, prior: prior}
}

// Options control a single sync run.
type Options struct {
	// HastusExport is the export folder name; blank picks the newest.
	HastusExport string
	// RatingFolder is the destination folder; blank derives it from the
	// export's calendar.
	RatingFolder string
	Validate     bool
	Push         bool
}

// Run pulls, merges, validates and pushes one rating. It returns the
// staging directory the rating was assembled in.
func (s *Syncer) Run(opts Options) (string, error) {
	log := s.log.With(zap.String("run_id", uuid.NewString()))

	export := opts.HastusExport
	if export == "" {
		exports, err := s.AvailableExports()
		if err != nil {
			return "", err
		}
		if len(exports) == 0 {
			return "", fmt.Errorf("no AVL exports found on the HASTUS share")
		}
		export = exports[0]
	}
	log = log.With(zap.String("hastus_export", export))

	ratingFolder := opts.RatingFolder
	if ratingFolder == "" {
		var err error
		if ratingFolder, err = s.RatingFolder(export); err != nil {
			return "", err
		}
	}
	log = log.With(zap.String("rating_folder", ratingFolder))

	staging := filepath.Join(s.cfg.StagingDir, ratingFolder)
	changed, err := s.pull(log, export, staging)
	if err != nil {
		return staging, err
	}
	if !changed {
		log.Info("no changes, nothing to do")
		return staging, nil
	}

	combine := filepath.Join(staging, "Combine")
	if opts.Validate {
		log.Info("validating rating")
		errors, err := validate.Rating(rating.New(combine))
		if err != nil {
			return staging, err
		}
		if len(errors) > 0 {
			for _, e := range errors {
				log.Error("validation error", zap.String("error", e.String()))
			}
			return staging, fmt.Errorf("rating failed validation with %d errors", len(errors))
		}
	}

	if err := s.pullPriorVersions(log, staging); err != nil {
		return staging, err
	}
	if err := s.schedulesPerGarage(staging); err != nil {
		return staging, err
	}
	if opts.Push {
		if err := s.push(log, ratingFolder, staging); err != nil {
			return staging, err
		}
	}
	return staging, nil
}

// AvailableExports lists the AVL export folders on the HASTUS share,
// newest rating first.
func (s *Syncer) AvailableExports() ([]string, error) {
	entries, err := s.hastus.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var exports []string
	for _, entry := range entries {
		if entry.IsDir() && strings.Contains(entry.Name(), "AVL") {
			exports = append(exports, entry.Name())
		}
	}
	sort.Slice(exports, func(i, j int) bool {
		return seasons.SortKeyForExport(exports[j]).Less(seasons.SortKeyForExport(exports[i]))
	})
	return exports, nil
}

// RatingFolder derives the rating folder name (for example
// "Winter12202020") from the first calendar record of the export.
func (s *Syncer) RatingFolder(export string) (string, error) {
	entries, err := s.hastus.ReadDir(export)
	if err != nil {
		return "", err
	}
	calendarFile := ""
	for _, entry := range entries {
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".cal") {
			calendarFile = entry.Name()
			break
		}
	}
	if calendarFile == "" {
		return "", fmt.Errorf("no .cal file in export %s", export)
	}

	file, err := s.hastus.Open(path.Join(export, calendarFile))
	if err != nil {
		return "", err
	}
	records, err := hastus.ParseReader(file)
	file.Close()
	if err != nil {
		return "", err
	}
	for _, record := range records {
		if cal, ok := record.(hastus.Calendar); ok {
			season := seasons.ForDate(cal.StartDate)
			return season + cal.StartDate.Format("01022006"), nil
		}
	}
	return "", fmt.Errorf("no calendar record in %s", calendarFile)
}

// pull copies the rating template and the deduplicated export files into
// the staging directory and merges them. It reports whether any file was
// new.
func (s *Syncer) pull(log *zap.Logger, export, staging string) (bool, error) {
	if err := copyTemplate(s.cfg.TemplateDir, staging); err != nil {
		return false, err
	}

	entries, err := s.hastus.ReadDir(export)
	if err != nil {
		return false, err
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	exportDir := filepath.Join(staging, "Combine", "HASTUS_export")
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return false, err
	}

	changed := false
	for _, name := range merge.DedupPrefix(names) {
		dst := filepath.Join(exportDir, name)
		if _, err := os.Stat(dst); err == nil {
			continue
		}
		log.Info("pulling export file", zap.String("file", name))
		if err := copyFromShare(s.hastus, path.Join(export, name), dst); err != nil {
			return false, err
		}
		changed = true
	}

	if changed {
		if err := merge.MergeCombine(filepath.Join(staging, "Combine")); err != nil {
			return false, err
		}
	}
	return changed, nil
}

// pullPriorVersions copies svc-desc.txt and ANN2DEST.csv from the
// currently released operational data.
func (s *Syncer) pullPriorVersions(log *zap.Logger, staging string) error {
	priorDir := filepath.Join(staging, "PriorVersions")
	if err := os.MkdirAll(priorDir, 0o755); err != nil {
		return err
	}

	log.Info("pulling prior versions")
	if err := copyFromShare(s.prior, svcDescPath, filepath.Join(priorDir, "svc-desc.txt")); err != nil {
		return err
	}

	entries, err := s.prior.ReadDir(announcementsPath)
	if err != nil {
		return err
	}
	var universal []string
	for _, entry := range entries {
		if strings.Contains(entry.Name(), "Universal") {
			universal = append(universal, entry.Name())
		}
	}
	if len(universal) == 0 {
		return fmt.Errorf("no Universal announcements directory under %s", announcementsPath)
	}
	sort.Strings(universal)

	src := path.Join(announcementsPath, universal[0], "Annundir", "ANN2DEST.csv")
	return copyFromShare(s.prior, src, filepath.Join(priorDir, "ANN2DEST.csv"))
}

// schedulesPerGarage writes Supporting/schedules_per_garage.csv from the
// pulled calendar.
func (s *Syncer) schedulesPerGarage(staging string) error {
	table, err := calendar.FromRating(rating.New(filepath.Join(staging, "Combine", "HASTUS_export")))
	if err != nil {
		return err
	}
	supportingDir := filepath.Join(staging, "Supporting")
	if err := os.MkdirAll(supportingDir, 0o755); err != nil {
		return err
	}
	file, err := os.Create(filepath.Join(supportingDir, "schedules_per_garage.csv"))
	if err != nil {
		return err
	}
	if err := table.WriteCSV(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// push copies the staged rating to the TransitMaster ratings share. The
// Combine subdirectories other than HASTUS_export stay local; only the
// merged files matter on the server.
func (s *Syncer) push(log *zap.Logger, ratingFolder, staging string) error {
	return filepath.WalkDir(staging, func(local string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(staging, local)
		if err != nil {
			return err
		}
		if rel == "." {
			return s.ratings.MkdirAll(ratingFolder)
		}
		relSlash := filepath.ToSlash(rel)

		if d.IsDir() {
			parent := filepath.Base(filepath.Dir(local))
			if strings.EqualFold(parent, "Combine") && !strings.EqualFold(d.Name(), "hastus_export") {
				return filepath.SkipDir
			}
			return s.ratings.MkdirAll(path.Join(ratingFolder, relSlash))
		}

		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		remote := path.Join(ratingFolder, relSlash)
		log.Info("pushing file", zap.String("file", remote))
		return copyToShare(s.ratings, local, remote)
	})
}

// copyTemplate copies the local rating template tree into dst.
func copyTemplate(template, dst string) error {
	return filepath.WalkDir(template, func(src string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(template, src)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if _, err := os.Stat(target); err == nil {
			return nil
		}
		return copyFile(src, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func copyFromShare(share Share, src, dst string) error {
	in, err := share.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func copyToShare(share Share, src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := share.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
