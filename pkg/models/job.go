package models

import (
	"fmt"
	"strconv"
)

// JobNumberLength is the number of digits in a job number.
const JobNumberLength = 6

// JobNumber identifies a manufacturing job. It is always exactly six ASCII
// digits; construct one with ParseJobNumber or core.ExtractJobNumber.
type JobNumber string

// ParseJobNumber validates that s is exactly six ASCII digits.
func ParseJobNumber(s string) (JobNumber, error) {
	if !IsJobNumber(s) {
		return "", &PathError{Kind: KindInvalidArgument, Input: s,
			Err: fmt.Errorf("job number must be exactly %d digits", JobNumberLength)}
	}
	return JobNumber(s), nil
}

// IsJobNumber reports whether s is exactly six ASCII digits.
func IsJobNumber(s string) bool {
	if len(s) != JobNumberLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Int returns the numeric value of the job number.
func (j JobNumber) Int() int {
	n, _ := strconv.Atoi(string(j))
	return n
}

func (j JobNumber) String() string { return string(j) }

// Department selects which QC report sub-path is used inside a job folder.
type Department string

const (
	DeptBalance  Department = "balance"
	DeptAssembly Department = "assembly"
	DeptBlading  Department = "blading"
)

// Departments lists every known department in display order.
var Departments = []Department{DeptBalance, DeptAssembly, DeptBlading}

// departmentQCPaths holds the path segments appended to a job folder.
// Blading has no NFT level; the folder templates differ.
var departmentQCPaths = map[Department][]string{
	DeptBalance:  {"Balance", "NFT", "QC Reports"},
	DeptAssembly: {"Assembly", "NFT", "QC Reports"},
	DeptBlading:  {"Blading", "QC Reports"},
}

// QCPath returns the path segments of the department's QC report folder
// relative to a job folder.
func (d Department) QCPath() ([]string, bool) {
	segs, ok := departmentQCPaths[d]
	if !ok {
		return nil, false
	}
	out := make([]string, len(segs))
	copy(out, segs)
	return out, true
}

// ParseDepartment validates a department name.
func ParseDepartment(s string) (Department, error) {
	d := Department(s)
	if _, ok := departmentQCPaths[d]; !ok {
		return "", &PathError{Kind: KindInvalidArgument, Input: s,
			Err: fmt.Errorf("department must be one of: balance, assembly, blading")}
	}
	return d, nil
}

// Target names a location that can be resolved and opened.
type Target string

const (
	TargetJob      Target = "job"      // job folder, arg is a job number
	TargetQC       Target = "qc"       // department QC folder, arg is a job number
	TargetPrints   Target = "prints"   // issued prints folder, arg is a job number
	TargetPrint    Target = "print"    // issued print file, arg is a filename
	TargetPictures Target = "pictures" // pictures folder, arg is a job number
	TargetModel    Target = "model"    // QC model file, arg is a filename
)

// Targets lists every target.
var Targets = []Target{TargetJob, TargetQC, TargetPrints, TargetPrint, TargetPictures, TargetModel}

// ParseTarget validates a target name.
func ParseTarget(s string) (Target, error) {
	for _, t := range Targets {
		if string(t) == s {
			return t, nil
		}
	}
	return "", &PathError{Kind: KindInvalidArgument, Input: s,
		Err: fmt.Errorf("target must be one of: job, qc, prints, print, pictures, model")}
}

// TakesFilename reports whether the target's argument is a filename rather
// than a job number.
func (t Target) TakesFilename() bool {
	return t == TargetPrint || t == TargetModel
}

// RangeConvention selects how a range folder name's upper bound is read.
type RangeConvention int

const (
	// RangeFull reads "130500-130999" as 130500..130999.
	RangeFull RangeConvention = iota
	// RangeTruncated reads "123000-199" as 123000..123199: the first three
	// characters of the lower bound are prefixed to the upper bound.
	RangeTruncated
)

func (c RangeConvention) String() string {
	if c == RangeTruncated {
		return "truncated"
	}
	return "full"
}

// RangeFolder is a directory whose name encodes an inclusive job range.
type RangeFolder struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
	Low  int    `json:"low" yaml:"low"`
	High int    `json:"high" yaml:"high"`
}

// Contains reports whether job falls inside the folder's range.
func (r RangeFolder) Contains(job JobNumber) bool {
	n := job.Int()
	return r.Low <= n && n <= r.High
}
