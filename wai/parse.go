package wai

import (
	"go.uber.org/zap"

	"github.com/singlestore-labs/to-wit/wai/internal/parser"
	"github.com/singlestore-labs/to-wit/wai/internal/token"
)

// Parse turns interface source text into an Interface. Parsing is
// all-or-nothing: on error no partial graph escapes.
func Parse(source []byte) (*Interface, error) {
	unit, err := parser.New(token.Tokenize(string(source))).Parse()
	if err != nil {
		return nil, err
	}

	iface, err := buildInterface(unit)
	if err != nil {
		return nil, err
	}

	Logger().Debug("parsed interface",
		zap.Int("types", len(iface.types)),
		zap.Int("functions", len(iface.funcs)))
	return iface, nil
}
