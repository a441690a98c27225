package logx

import (
	"encoding/json"
	"time"
)

// JSONFormatter formats logs as JSON
type JSONFormatter struct {
	config *Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(config *Config) *JSONFormatter {
	return &JSONFormatter{config: config}
}

// Format formats a log entry as JSON
func (f *JSONFormatter) Format(entry *LogEntry) ([]byte, error) {
	data := make(map[string]interface{}, len(entry.Fields)+5)
	data["level"] = entry.Level.String()
	data["message"] = entry.Message

	if f.config.EnableTimestamp {
		switch f.config.TimeFormat {
		case "unix":
			data["timestamp"] = entry.Timestamp.Unix()
		case "unixmilli":
			data["timestamp"] = entry.Timestamp.UnixMilli()
		default:
			data["timestamp"] = entry.Timestamp.Format(time.RFC3339Nano)
		}
	}

	return marshalLine(f.config, entry, data, "")
}

// CloudWatchFormatter formats logs for AWS CloudWatch Logs Insights
type CloudWatchFormatter struct {
	config *Config
}

// NewCloudWatchFormatter creates a new CloudWatch formatter
func NewCloudWatchFormatter(config *Config) *CloudWatchFormatter {
	return &CloudWatchFormatter{config: config}
}

// Format formats a log entry for CloudWatch
func (f *CloudWatchFormatter) Format(entry *LogEntry) ([]byte, error) {
	data := make(map[string]interface{}, len(entry.Fields)+5)
	data["level"] = entry.Level.String()
	data["msg"] = entry.Message
	data["time"] = entry.Timestamp.Format(time.RFC3339Nano)

	return marshalLine(f.config, entry, data, "error")
}

// marshalLine merges caller, fields, error and data into base and encodes a
// single newline-terminated JSON document.
func marshalLine(config *Config, entry *LogEntry, base map[string]interface{}, errorType string) ([]byte, error) {
	if config.EnableCaller && entry.Caller != "" {
		base["caller"] = entry.Caller
	}

	for k, v := range entry.Fields {
		base[k] = v
	}

	if entry.Error != nil {
		base["error"] = entry.Error.Error()
		if errorType != "" {
			base["error_type"] = errorType
		}
	}

	if entry.Data != nil {
		base["data"] = entry.Data
	}

	bytes, err := json.Marshal(base)
	if err != nil {
		return nil, err
	}
	return append(bytes, '\n'), nil
}
