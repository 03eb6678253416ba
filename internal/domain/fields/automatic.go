package fields

import (
	"time"

	"github.com/GriffinCanCode/bibkit/internal/domain/entry"
	"github.com/GriffinCanCode/bibkit/internal/infrastructure/config"
)

// AutomaticFields configures owner and timestamp stamping
type AutomaticFields struct {
	UseOwner       bool
	DefaultOwner   string
	UseTimestamp   bool
	TimestampField string
	TimestampValue string
}

// AutomaticFieldsFromConfig resolves the timestamp format against now
func AutomaticFieldsFromConfig(cfg config.FieldsConfig, now time.Time) AutomaticFields {
	field := cfg.TimestampField
	if field == "" {
		field = entry.FieldTimestamp
	}
	format := cfg.TimestampFormat
	if format == "" {
		format = config.DefaultTimestampFormat
	}
	return AutomaticFields{
		UseOwner:       cfg.UseOwner,
		DefaultOwner:   cfg.DefaultOwner,
		UseTimestamp:   cfg.UseTimestamp,
		TimestampField: field,
		TimestampValue: now.Format(format),
	}
}

// SetAutomaticFields sets owner and timestamp on every record where the
// corresponding option is enabled and the field is absent, or always when
// the matching overwrite flag is true.
func SetAutomaticFields[R entry.Record](records []R, overwriteOwner, overwriteTimestamp bool, cfg AutomaticFields) {
	if !cfg.UseOwner && !cfg.UseTimestamp {
		return
	}
	for _, rec := range records {
		SetAutomaticFieldsOne(rec, overwriteOwner, overwriteTimestamp, cfg)
	}
}

// SetAutomaticFieldsOne stamps a single record
func SetAutomaticFieldsOne(rec entry.Record, overwriteOwner, overwriteTimestamp bool, cfg AutomaticFields) {
	if cfg.UseOwner && (overwriteOwner || !rec.HasField(entry.FieldOwner)) {
		rec.SetField(entry.FieldOwner, cfg.DefaultOwner)
	}
	if cfg.UseTimestamp && (overwriteTimestamp || !rec.HasField(cfg.TimestampField)) {
		rec.SetField(cfg.TimestampField, cfg.TimestampValue)
	}
}
