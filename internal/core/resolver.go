// Package core contains the job path resolution logic for jobnav: job number
// extraction, range-folder lookup, and the naming conventions that turn a
// job number into a location on the shared drive.
package core

import (
	"path/filepath"

	"github.com/laporte-eng/jobnav/pkg/models"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Fixed sub-paths inside a job folder.
var issuedPrintsPath = []string{"Drafting", "Issued Prints"}

// PathResolver computes shared-drive locations for a job from the immutable
// root configuration it was built with.
type PathResolver interface {
	// ProjectsFolderRoot returns the projects range folder holding job.
	ProjectsFolderRoot(job models.JobNumber) (string, error)
	// ProjectsFolder returns the job's folder under the projects root.
	ProjectsFolder(job models.JobNumber) (string, error)
	// DepartmentQCFolder returns the department's QC report folder, creating
	// it when missing. Creation failures are not reported.
	DepartmentQCFolder(job models.JobNumber, dept models.Department) (string, error)
	// IssuedPrintsFolder returns the job's issued prints folder.
	IssuedPrintsFolder(job models.JobNumber) (string, error)
	// IssuedPrintFile extracts the job number from filename and returns the
	// file's path inside that job's issued prints folder.
	IssuedPrintFile(filename string) (string, error)
	// PicturesFolderRoot returns the pictures range folder holding job.
	PicturesFolderRoot(job models.JobNumber) (string, error)
	// PicturesFolder returns the job's pictures folder.
	PicturesFolder(job models.JobNumber) (string, error)
	// QCModelFile returns the path of a QC CAD model by filename.
	QCModelFile(filename string) (string, error)
	// RangeFolders lists the range folders of the projects root, or of the
	// pictures root when conv is models.RangeTruncated.
	RangeFolders(conv models.RangeConvention) ([]models.RangeFolder, error)
	// Resolve dispatches to the operation named by target.
	Resolve(target models.Target, arg string, dept models.Department) (string, error)
}

// ResolverOption customizes a resolver built by NewPathResolver.
type ResolverOption func(*pathResolver)

// WithLogger sets the logger used for diagnostics such as discarded
// directory creation failures. The default discards everything.
func WithLogger(l zerolog.Logger) ResolverOption {
	return func(r *pathResolver) { r.logger = l }
}

// pathResolver implements PathResolver on top of an afero file system.
type pathResolver struct {
	fs     afero.Fs
	roots  models.RootConfig
	logger zerolog.Logger
}

// NewPathResolver creates a PathResolver over fsys using roots. roots is
// copied and not validated; a bad root surfaces on first use.
func NewPathResolver(fsys afero.Fs, roots models.RootConfig, opts ...ResolverOption) PathResolver {
	r := &pathResolver{
		fs:     fsys,
		roots:  roots,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *pathResolver) ProjectsFolderRoot(job models.JobNumber) (string, error) {
	return FindRangeFolderRoot(r.fs, job, r.roots.ProjectsFolder, models.RangeFull)
}

func (r *pathResolver) ProjectsFolder(job models.JobNumber) (string, error) {
	root, err := r.ProjectsFolderRoot(job)
	if err != nil {
		return "", err
	}
	return VerifyPath(r.fs, filepath.Join(root, string(job)))
}

func (r *pathResolver) DepartmentQCFolder(job models.JobNumber, dept models.Department) (string, error) {
	segs, ok := dept.QCPath()
	if !ok {
		return "", &models.PathError{Kind: models.KindInvalidArgument, Input: string(dept)}
	}
	jobFolder, err := r.ProjectsFolder(job)
	if err != nil {
		return "", err
	}

	path := filepath.Join(append([]string{jobFolder}, segs...)...)

	// Best effort: not every job template has this folder. The path is
	// returned whether or not creation succeeds.
	if err := r.fs.MkdirAll(path, 0o755); err != nil {
		r.logger.Debug().Err(err).Str("path", path).Msg("qc folder creation failed")
	}
	return path, nil
}

func (r *pathResolver) IssuedPrintsFolder(job models.JobNumber) (string, error) {
	jobFolder, err := r.ProjectsFolder(job)
	if err != nil {
		return "", err
	}
	return VerifyPath(r.fs, filepath.Join(append([]string{jobFolder}, issuedPrintsPath...)...))
}

func (r *pathResolver) IssuedPrintFile(filename string) (string, error) {
	job, err := ExtractJobNumber(filename)
	if err != nil {
		return "", err
	}
	folder, err := r.IssuedPrintsFolder(job)
	if err != nil {
		return "", err
	}
	return VerifyPath(r.fs, filepath.Join(folder, filename))
}

func (r *pathResolver) PicturesFolderRoot(job models.JobNumber) (string, error) {
	return FindRangeFolderRoot(r.fs, job, r.roots.Pictures, models.RangeTruncated)
}

func (r *pathResolver) PicturesFolder(job models.JobNumber) (string, error) {
	root, err := r.PicturesFolderRoot(job)
	if err != nil {
		return "", err
	}
	return VerifyPath(r.fs, filepath.Join(root, string(job)))
}

func (r *pathResolver) QCModelFile(filename string) (string, error) {
	return VerifyPath(r.fs, filepath.Join(r.roots.QCModels, filename))
}

func (r *pathResolver) RangeFolders(conv models.RangeConvention) ([]models.RangeFolder, error) {
	root := r.roots.ProjectsFolder
	if conv == models.RangeTruncated {
		root = r.roots.Pictures
	}
	return ListRangeFolders(r.fs, root, conv)
}

// Resolve maps a target and its argument onto the matching operation. For
// job-number targets arg may be a bare job number or any text containing
// one. dept is only read for models.TargetQC.
func (r *pathResolver) Resolve(target models.Target, arg string, dept models.Department) (string, error) {
	if arg == "" {
		return "", &models.PathError{Kind: models.KindInvalidArgument, Input: arg}
	}

	switch target {
	case models.TargetPrint:
		return r.IssuedPrintFile(arg)
	case models.TargetModel:
		return r.QCModelFile(arg)
	}

	job, err := JobNumberFromArg(arg)
	if err != nil {
		return "", err
	}

	switch target {
	case models.TargetJob:
		return r.ProjectsFolder(job)
	case models.TargetQC:
		if dept == "" {
			dept = models.DeptBalance
		}
		return r.DepartmentQCFolder(job, dept)
	case models.TargetPrints:
		return r.IssuedPrintsFolder(job)
	case models.TargetPictures:
		return r.PicturesFolder(job)
	default:
		return "", &models.PathError{Kind: models.KindInvalidArgument, Input: string(target)}
	}
}
