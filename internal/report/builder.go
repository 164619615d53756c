package report

import (
	"strings"
	"time"

	apperrors "misoreports/internal/errors"
)

// Fixed real-time broker endpoints. The target and extension ride as query
// parameters; no date is ever part of these URLs.
const (
	dataBrokerFormat = "https://api.misoenergy.org/MISORTWDDataBroker/DataBrokerServices.asmx?messageType=%TARGET%&returnType=%EXT%"
	biReporterFormat = "https://api.misoenergy.org/MISORTWDBIReporter/Reporter.asmx?messageType=%TARGET%&returnType=%EXT%"
)

// BuilderKind tags one of the three URL builder variants. The set is closed;
// BuildURL and StepDate dispatch by switch so a new variant cannot be added
// without handling it everywhere.
type BuilderKind int

const (
	// DataBroker builds real-time data-broker URLs.
	DataBroker BuilderKind = iota
	// BIReporter builds URLs on the alternate real-time broker endpoint.
	BIReporter
	// MarketReports builds dated published-report URLs via a generator.
	MarketReports
)

// Builder turns a requested extension and date into a concrete download URL
// for one report. Builders are constructed once with the registry and never
// mutated.
type Builder struct {
	Kind BuilderKind

	// Target is the provider-internal report identifier, independent of the
	// public registry name.
	Target string

	// Supported is the immutable set of recognized file extensions.
	Supported []string

	// Default is substituted when the caller passes no extension; empty
	// means the builder has no default.
	Default string

	// Generator drives date encoding for MarketReports builders only.
	Generator GeneratorKind
}

// resolveExtension applies the default and validates membership in the
// supported set. It runs before any URL is formed, so configuration errors
// never reach the network.
func (b Builder) resolveExtension(ext *string) (string, error) {
	resolved := b.Default
	if ext != nil {
		resolved = *ext
	}
	if resolved == "" {
		return "", apperrors.New(apperrors.KindMissingExtension,
			"no file extension given and target %q has no default", b.Target)
	}
	for _, s := range b.Supported {
		if s == resolved {
			return resolved, nil
		}
	}
	return "", apperrors.New(apperrors.KindUnsupportedExtension,
		"unsupported file extension %q for target %q (supported: %s)",
		resolved, b.Target, strings.Join(b.Supported, ", "))
}

// BuildURL produces the final download URL. A nil extension selects the
// builder default; date is ignored by the broker variants and required by
// date-dependent generators.
func (b Builder) BuildURL(ext *string, date *time.Time) (string, error) {
	resolved, err := b.resolveExtension(ext)
	if err != nil {
		return "", err
	}

	switch b.Kind {
	case DataBroker:
		return expandBroker(dataBrokerFormat, b.Target, resolved), nil
	case BIReporter:
		return expandBroker(biReporterFormat, b.Target, resolved), nil
	case MarketReports:
		url, err := b.Generator.URL(date, b.Target)
		if err != nil {
			return "", err
		}
		return strings.Replace(url, extensionPlaceholder, resolved, 1), nil
	default:
		return "", apperrors.New(apperrors.KindUnknownReport,
			"unknown builder kind %d for target %q", int(b.Kind), b.Target)
	}
}

// StepDate moves date by direction publication cycles. Broker builders have
// no publication cycle and return the date unchanged; a nil date stays nil.
// MarketReports builders consult the generator increment table and fail for
// a generator with no entry.
func (b Builder) StepDate(date *time.Time, direction int) (*time.Time, error) {
	if b.Kind != MarketReports {
		return date, nil
	}
	inc, err := b.Generator.Increment()
	if err != nil {
		return nil, err
	}
	if date == nil {
		return nil, nil
	}
	stepped := inc.Step(*date, direction)
	return &stepped, nil
}

func expandBroker(format, target, ext string) string {
	url := strings.Replace(format, "%TARGET%", target, 1)
	return strings.Replace(url, "%EXT%", ext, 1)
}
