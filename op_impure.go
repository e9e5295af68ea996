package jsonlogic

// registerImpureOperators wires log, the one operator with an
// observable side effect: it emits its argument through the
// package-level Logger (see logging.go, SetLogger) and returns it
// unchanged.
func registerImpureOperators() {
	registerEager("log", npExactly(1), opLog)
}

func opLog(args []JsValue) (JsValue, error) {
	v := args[0]
	if logger != nil {
		s, err := ToJSON(v)
		data := LogData{"value": v}
		if err == nil {
			data["value"] = string(s)
		}
		logger.Handle(&LogMessage{Info, LogOperatorSideEffect, data})
	}
	return v, nil
}
