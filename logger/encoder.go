package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"

	// Everforest palette
	colorGreenMid = "\x1b[38;5;107m"
	colorAqua     = "\x1b[38;5;109m"
	colorYellow   = "\x1b[38;5;179m"
	colorRed      = "\x1b[38;5;167m"
	colorRedBg    = "\x1b[48;5;52m"
	colorYellowBg = "\x1b[48;5;58m"
)

var bufferPool = buffer.NewPool()

// minimalEncoder implements a calm, compact console encoder.
// Format: "13:04:35  engine  pair finished  n=5 k=2 duration_ms=0"
//
// Context fields added with Logger.With are kept in the embedded map
// encoder; entry fields follow them in call order. No field is dropped.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return &minimalEncoder{MapObjectEncoder: clone}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	line := bufferPool.Get()

	line.AppendString(colorGreenMid)
	line.AppendString(ent.Time.Format("15:04:05"))
	line.AppendString(colorReset)

	// Level: only shown when it is not INFO
	if tag := levelTag(ent.Level); tag != "" {
		line.AppendString("  ")
		line.AppendString(tag)
	}

	if ent.LoggerName != "" {
		line.AppendString("  ")
		line.AppendString(colorAqua)
		line.AppendString(ent.LoggerName)
		line.AppendString(colorReset)
	}

	line.AppendString("  ")
	line.AppendString(ent.Message)

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		if !strings.HasSuffix(k, "Verbose") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		appendField(line, k, enc.Fields[k])
	}

	if len(fields) > 0 {
		entryFields := zapcore.NewMapObjectEncoder()
		for _, f := range fields {
			f.AddTo(entryFields)
		}
		for _, f := range fields {
			if v, ok := entryFields.Fields[f.Key]; ok {
				appendField(line, f.Key, v)
			}
		}
	}

	line.AppendString("\n")
	return line, nil
}

func appendField(line *buffer.Buffer, key string, value interface{}) {
	line.AppendString("  ")
	line.AppendString(key)
	line.AppendByte('=')
	line.AppendString(fmt.Sprint(value))
}

// levelTag returns bold + colored + background for anything but INFO
func levelTag(level zapcore.Level) string {
	switch level {
	case zapcore.InfoLevel:
		return ""
	case zapcore.DebugLevel:
		return colorAqua + "DEBUG" + colorReset
	case zapcore.WarnLevel:
		return colorBold + colorYellowBg + colorYellow + "WARN" + colorReset
	default:
		return colorBold + colorRedBg + colorRed + level.CapitalString() + colorReset
	}
}
