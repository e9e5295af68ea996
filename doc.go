/*
Package jsonlogic is an embeddable evaluator for JsonLogic, a
declarative rule language whose programs are themselves JSON
documents. Given a rule document and a data document, Apply returns a
JSON result:

	result, err := jsonlogic.Apply(rule, data)

Both rule and data are JsValue, the engine's tagged-union JSON value
type (Null, Bool, Number, String, Array, Object). Use FromJSON to
decode raw JSON bytes into a JsValue while preserving object key
order, and ToJSON to encode one back.

CORE PIPELINE

Rule documents are classified by Parse into one of four parsed node
shapes (Raw, Operation, LazyOperation, DataOperation), then walked by
Evaluate against a data value. This two-stage design means a rule can
be parsed once and evaluated repeatedly against different data values
without re-classifying its shape each time:

	parsed, err := jsonlogic.Parse(rule)
	...
	result, err := jsonlogic.Evaluate(parsed, data)

ERROR HANDLING

Errors are returned, not thrown: there are no panics across the
package boundary, and the first error encountered during parsing or
evaluation short-circuits the call. The error taxonomy
(InvalidOperationError, WrongArgumentCountError, InvalidArgumentError,
InvalidVariableError, InvalidVariableKeyError, InvalidDataError,
UnexpectedError) lets callers discriminate failure modes with
errors.As when that's useful; most callers can just check err != nil.

LOGGING

The "log" operator and the RuleSetRepository's background fetch/cache
machinery both emit through a package-level Logger interface rather
than writing to stdout directly, so host applications can redirect
engine diagnostics the way they redirect any other library's logs. See
SetLogger and DevLogger in logging.go.

REMOTE RULE SETS

RuleSetRepository, RedisRuleSetCache, PollDatasource and SSEDatasource
(repository.go, cache_redis.go, datasource_poll.go, datasource_sse.go)
are optional, additive infrastructure for fetching and caching a named
document of JsonLogic rules from a remote endpoint. None of them are
required to use Apply; the evaluation core has no network dependency
and no persistent state.
*/
package jsonlogic
