package compdb

import (
	"errors"

	"go.uber.org/zap"
)

// Result describes one completed split.
type Result struct {
	Partition Partition
	Paths     Paths
	Total     int
	LoadErr   error     // soft failure; the split ran on an empty set
	Overwrote Overwrite // output that replaced the input, if any
}

// Splitter loads, classifies and writes one compile commands document.
type Splitter struct {
	log    *zap.Logger
	naming Naming
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithNaming overrides the output naming rules.
func WithNaming(n Naming) Option {
	return func(s *Splitter) { s.naming = n }
}

// New returns a Splitter logging to log. A nil log discards output.
func New(log *zap.Logger, opts ...Option) *Splitter {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Splitter{log: log, naming: DefaultNaming()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Split partitions the document at input into its success and fail files.
// Load failures are logged and treated as an empty document; path conflicts
// and write failures are returned.
func (s *Splitter) Split(input string) (Result, error) {
	log := s.log.With(zap.String("input", input))

	paths, overwrote, err := OutputPaths(input, s.naming)
	if err != nil {
		return Result{Paths: paths}, err
	}

	loaded := Load(input)
	records := loaded.Records
	if loaded.Err != nil {
		if errors.Is(loaded.Err, ErrMalformed) {
			log.Error("decode compile commands file failed", zap.Error(loaded.Err))
		} else {
			log.Error("open compile commands file failed", zap.Error(loaded.Err))
		}
		records = nil
	} else if len(records) == 0 {
		log.Info("compile commands file is empty")
	}

	res := Result{
		Partition: Classify(log, records),
		Total:     len(records),
		LoadErr:   loaded.Err,
		Paths:     paths,
		Overwrote: overwrote,
	}
	switch overwrote {
	case OverwriteSuccess:
		log.Warn("success output overwrites input", zap.String("success", paths.Success))
	case OverwriteFail:
		log.Warn("fail output overwrites input", zap.String("fail", paths.Fail))
	}

	if err := WriteRecords(res.Paths.Success, res.Partition.Success); err != nil {
		return res, err
	}
	if err := WriteRecords(res.Paths.Fail, res.Partition.Fail); err != nil {
		return res, err
	}
	log.Debug("split compile commands",
		zap.Int("total", res.Total),
		zap.Int("success", len(res.Partition.Success)),
		zap.Int("fail", len(res.Partition.Fail)),
		zap.Int("invalid", res.Partition.Invalid),
	)
	return res, nil
}
