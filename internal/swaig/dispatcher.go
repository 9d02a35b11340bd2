package swaig

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"swaig/internal/logging"
)

// Dispatcher serves catalog requests and invokes registered tools.
type Dispatcher struct {
	registry       *Registry
	validateSchema bool
	schemas        sync.Map // *ToolDescriptor -> *gojsonschema.Schema
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithSchemaValidation validates the supplied arguments against the tool's rendered
// parameters schema before binding them.
func WithSchemaValidation() DispatcherOption {
	return func(d *Dispatcher) { d.validateSchema = true }
}

// NewDispatcher returns a Dispatcher reading from registry.
func NewDispatcher(registry *Registry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{registry: registry}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle routes one request to catalog or invocation mode. The result is either a
// []Signature or a Response, ready to be encoded as the HTTP body.
func (d *Dispatcher) Handle(ctx context.Context, req Request, webHookURL string) any {
	if req.Action() == ActionGetSignature {
		return d.Catalog(req, webHookURL)
	}
	return d.Invoke(ctx, req)
}

// Catalog renders the signatures selected by the request's functions filter.
func (d *Dispatcher) Catalog(req Request, webHookURL string) []Signature {
	names := req.Functions()
	logging.Debugf("signature request functions=%v", names)
	return d.registry.Signatures(names, webHookURL)
}

// Invoke validates the request, calls the named tool and folds its result into a
// Response. Every outcome, including failures, is a Response.
func (d *Dispatcher) Invoke(ctx context.Context, req Request) Response {
	rawName, present := req["function"]
	if !present || rawName == nil || rawName == "" {
		logging.Errorf("function name not provided")
		return Response{Response: MsgFunctionNameMissing}
	}
	name, _ := rawName.(string)
	desc, ok := d.registry.Lookup(name)
	if !ok {
		logging.Errorf("function not found: %v", rawName)
		return Response{Response: MsgFunctionNotFound}
	}

	params, ok := req.parsedArguments()
	if !ok {
		return Response{Response: MsgInvalidParameters}
	}
	metaData, ok := req.metaData()
	if !ok {
		return Response{Response: MsgInvalidMetaData}
	}
	token, ok := req.metaDataToken()
	if !ok {
		return Response{Response: MsgInvalidMetaToken}
	}

	if d.validateSchema {
		if err := d.validate(desc, params); err != nil {
			return d.failure(name, err)
		}
	}
	args, err := bind(desc.args, params)
	if err != nil {
		return d.failure(name, err)
	}

	logging.Debugf("calling function %s with params %s", name, logging.Payload(params))
	result, updated, err := execute(ctx, desc.fn, Call{
		Function:      name,
		Args:          args,
		MetaDataToken: token,
		MetaData:      metaData,
	})
	if err != nil {
		return d.failure(name, err)
	}
	logging.Debugf("function %s executed successfully", name)

	resp := Response{Response: result}
	if len(updated) > 0 {
		resp.Action = []Action{{SetMetaData: updated}}
	}
	return resp
}

func (d *Dispatcher) failure(name string, err error) Response {
	logging.Errorf("error executing function %s: %v", name, err)
	if IsArgumentError(err) {
		return Response{Response: fmt.Sprintf("Invalid arguments for function '%s': %s", name, err.Error())}
	}
	return Response{Response: err.Error()}
}

func execute(ctx context.Context, fn Func, call Call) (result any, metaData map[string]any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result, metaData = nil, nil
			err = fmt.Errorf("%v", rec)
		}
	}()
	return fn(ctx, call)
}

func (d *Dispatcher) validate(desc *ToolDescriptor, params map[string]any) error {
	schema, err := d.schemaFor(desc)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(params))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var details []string
	for _, re := range result.Errors() {
		details = append(details, re.String())
	}
	return InvalidArguments("%s", strings.Join(details, "; "))
}

func (d *Dispatcher) schemaFor(desc *ToolDescriptor) (*gojsonschema.Schema, error) {
	if s, ok := d.schemas.Load(desc); ok {
		return s.(*gojsonschema.Schema), nil
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(desc.Parameters))
	if err != nil {
		return nil, err
	}
	d.schemas.Store(desc, s)
	return s, nil
}
