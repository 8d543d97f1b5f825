package filter

import (
	"github.com/bnema/element-filter/internal/dom"
	"go.uber.org/zap"
)

// ZapObserver returns an observer that logs every match at debug level
func ZapObserver(logger *zap.Logger) Observer {
	return func(e Event) {
		logger.Debug("selector matched",
			zap.Stringer("mode", e.Mode),
			zap.Stringer("selector", e.Selector),
			zap.String("node", dom.Describe(e.Node)),
		)
	}
}
