package swaig

// ActionGetSignature selects catalog mode.
const ActionGetSignature = "get_signature"

// Invocation outcomes reported in the response payload.
const (
	MsgFunctionNameMissing = "Function name not provided"
	MsgFunctionNotFound    = "Function not found"
	MsgInvalidParameters   = "Invalid parameters format"
	MsgInvalidMetaData     = "meta_data is not a valid dictionary"
	MsgInvalidMetaToken    = "meta_data_token is not a valid string"
)

// Request is a decoded inbound envelope. Fields are kept untyped so that malformed
// shapes can be reported in the payload instead of failing the decode.
type Request map[string]any

// Action returns the action field, or "" when it is absent or not a string.
func (r Request) Action() string {
	s, _ := r["action"].(string)
	return s
}

// Functions returns the catalog filter. Non-string entries are dropped; a missing or
// non-list field yields nil.
func (r Request) Functions() []string {
	list, ok := r["functions"].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// parsedArguments extracts argument.parsed[0]. ok is false when a value is present
// but is not an object.
func (r Request) parsedArguments() (map[string]any, bool) {
	raw, present := r["argument"]
	if !present || raw == nil {
		return map[string]any{}, true
	}
	argument, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	rawParsed, present := argument["parsed"]
	if !present || rawParsed == nil {
		return map[string]any{}, true
	}
	parsed, ok := rawParsed.([]any)
	if !ok {
		return nil, false
	}
	if len(parsed) == 0 {
		return map[string]any{}, true
	}
	params, ok := parsed[0].(map[string]any)
	return params, ok
}

func (r Request) metaData() (map[string]any, bool) {
	raw, present := r["meta_data"]
	if !present || raw == nil {
		return map[string]any{}, true
	}
	m, ok := raw.(map[string]any)
	return m, ok
}

func (r Request) metaDataToken() (string, bool) {
	raw, present := r["meta_data_token"]
	if !present || raw == nil {
		return "", true
	}
	s, ok := raw.(string)
	return s, ok
}

// Response is the invocation-mode envelope.
type Response struct {
	Response any      `json:"response"`
	Action   []Action `json:"action,omitempty"`
}

// Action is an instruction appended to a response.
type Action struct {
	SetMetaData map[string]any `json:"set_meta_data"`
}
