package jobsource

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/rightdoers/doers-matcher/internal/matcher"
)

const (
	JobIDField      = "ID"
	JobCompanyField = "Company"

	ExcludeActorUser    = "user"
	ExcludeActorMatcher = "matcher"
)

// Jobs is an ordered list of job records that filters narrow down.
type Jobs struct {
	Items []matcher.JobRecord
}

func NewJobs(records []matcher.JobRecord) *Jobs {
	return &Jobs{Items: records}
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) FindByID(id string) *matcher.JobRecord {
	for idx := range j.Items {
		if j.Items[idx].ID == id {
			return &j.Items[idx]
		}
	}
	return nil
}

// Exclude drops every job whose field equals one of targets and returns
// the dropped ids. Company names compare case-insensitively. Order of the
// remaining jobs is preserved.
func (j *Jobs) Exclude(field string, targets []string) []string {
	if len(targets) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		set[normalizeField(field, target)] = struct{}{}
	}

	var excluded []string
	kept := j.Items[:0]
	for _, job := range j.Items {
		if _, ok := set[normalizeField(field, stringField(job, field))]; ok {
			excluded = append(excluded, job.ID)
			continue
		}
		kept = append(kept, job)
	}
	j.Items = kept

	return excluded
}

// Keep retains only jobs for which keep returns true and returns the ids
// of the dropped ones.
func (j *Jobs) Keep(keep func(matcher.JobRecord) bool) []string {
	var dropped []string
	kept := j.Items[:0]
	for _, job := range j.Items {
		if keep(job) {
			kept = append(kept, job)
			continue
		}
		dropped = append(dropped, job.ID)
	}
	j.Items = kept

	return dropped
}

func stringField(job matcher.JobRecord, name string) string {
	switch name {
	case JobIDField:
		return job.ID
	case JobCompanyField:
		return job.CompanyName
	default:
		return ""
	}
}

func normalizeField(name, value string) string {
	if name == JobCompanyField {
		return strings.ToLower(strings.TrimSpace(value))
	}
	return value
}

// ToExcluded builds exclude file entries for every job.
func (j *Jobs) ToExcluded(actor, reason string) *ExcludedJobs {
	excluded := &ExcludedJobs{}
	for _, job := range j.Items {
		excluded.Items = append(excluded.Items, &ExcludedJob{
			ID:          job.ID,
			URL:         job.ApplyURL,
			CompanyName: job.CompanyName,
			Actor:       actor,
			Reason:      reason,
			ExcludedAt:  time.Now().UTC(),
		})
	}
	return excluded
}

// ExcludedJobs is the content of an exclude file.
type ExcludedJobs struct {
	Items []*ExcludedJob
}

type ExcludedJob struct {
	ID          string
	URL         string
	CompanyName string
	Actor       string `json:",omitempty"`
	Reason      string `json:",omitempty"`
	ExcludedAt  time.Time
}

// LoadExcludedJobs reads an exclude file. A missing or empty file yields an
// empty list.
func LoadExcludedJobs(path string) (*ExcludedJobs, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &ExcludedJobs{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedJobs{}, nil
	}

	var excluded ExcludedJobs
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (e *ExcludedJobs) Append(other *ExcludedJobs) {
	e.Items = append(e.Items, other.Items...)
}

func (e *ExcludedJobs) IDs() []string {
	ids := make([]string, 0, len(e.Items))
	for _, job := range e.Items {
		ids = append(ids, job.ID)
	}
	return ids
}

func (e *ExcludedJobs) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// AppendExcluded adds jobs to the exclude file at path.
func AppendExcluded(path string, jobs *Jobs, actor, reason string) error {
	excluded, err := LoadExcludedJobs(path)
	if err != nil {
		return err
	}

	excluded.Append(jobs.ToExcluded(actor, reason))
	return excluded.ToFile(path)
}
