package svcconfig

import (
	"fmt"
	"strings"
)

// ServiceConfig is the immutable product of Create: a sequence of global
// parsed configs (indexed by parser registration index) plus a resolved
// mapping from call path to per-method parsed config vectors. Once built it
// is never mutated and is safe for unsynchronized concurrent reads; callers
// replace it wholesale when a new document arrives.
type ServiceConfig struct {
	raw     string
	global  []ParsedConfig
	methods map[string][]ParsedConfig
}

// Raw returns the original document text.
func (sc *ServiceConfig) Raw() string { return sc.raw }

// GetGlobalParsedConfig returns the global config produced by the parser
// registered at index, or nil when that parser produced nothing.
func (sc *ServiceConfig) GetGlobalParsedConfig(index int) ParsedConfig {
	if index < 0 || index >= len(sc.global) {
		return nil
	}
	return sc.global[index]
}

// GetMethodParsedConfigVector resolves a call path of the form
// "/service/method" to its per-method config vector: one slot per
// registered parser, possibly nil. Resolution tries the exact
// service/method key, then the service default, then the global default;
// nil means no configuration matched and the caller decides how to behave.
func (sc *ServiceConfig) GetMethodParsedConfigVector(path string) []ParsedConfig {
	p := strings.TrimPrefix(path, "/")
	if i := strings.Index(p, "/"); i >= 0 {
		service, method := p[:i], p[i+1:]
		if vec, ok := sc.methods[service+"/"+method]; ok {
			return vec
		}
		if vec, ok := sc.methods[service+"/"]; ok {
			return vec
		}
	}
	if vec, ok := sc.methods[""]; ok {
		return vec
	}
	return nil
}

// Create validates jsonText against every parser in reg and compiles it
// into a ServiceConfig. Validation is all-or-nothing: any error anywhere
// fails the whole parse with a single hierarchical error, and no partially
// valid ServiceConfig is ever returned. Create touches no shared mutable
// state; concurrent calls against a stable registry are safe.
func Create(reg *Registry, opts Options, jsonText string) (*ServiceConfig, error) {
	root, err := DecodeValue(JSONBytes([]byte(jsonText)))
	if err != nil {
		return nil, GroupError("JSON parsing failed", []*ErrorNode{LeafError(err.Error())})
	}
	rootObj, ok := root.AsObject()
	if !ok {
		return nil, GroupError("JSON parsing failed", []*ErrorNode{
			LeafError("service config must be a JSON object"),
		})
	}

	sc := &ServiceConfig{
		raw:     jsonText,
		global:  make([]ParsedConfig, reg.NumParsers()),
		methods: make(map[string][]ParsedConfig),
	}

	globalErrs := make([]*ErrorNode, 0, reg.NumParsers())
	for i, p := range reg.parsers {
		cfg, perr := p.ParseGlobalParams(opts, root)
		sc.global[i] = cfg
		globalErrs = append(globalErrs, perr)
	}

	mcErrs := sc.parseMethodConfigs(reg, opts, rootObj)

	failure := GroupError("Service config parsing error", []*ErrorNode{
		GroupError("Global Params", globalErrs),
		GroupError("Method Params", []*ErrorNode{GroupError("methodConfig", mcErrs)}),
	})
	if failure != nil {
		return nil, failure
	}
	return sc, nil
}

// parseMethodConfigs runs every parser over every methodConfig element and
// resolves name patterns into sc.methods, collecting all errors.
func (sc *ServiceConfig) parseMethodConfigs(reg *Registry, opts Options, rootObj *Object) []*ErrorNode {
	mcVal, present := rootObj.Get("methodConfig")
	if !present {
		// No method entries is success, not an error.
		return nil
	}
	entries, ok := mcVal.AsArray()
	if !ok {
		return []*ErrorNode{LeafError("field:methodConfig error:should be of type array")}
	}

	var errs []*ErrorNode
	for idx, entry := range entries {
		entryObj, ok := entry.AsObject()
		if !ok {
			errs = append(errs, Errorf("field:methodConfig index %d error:should be of type object", idx))
			continue
		}

		// Parsers run for every element, named or not, so that a nameless
		// entry still surfaces its field errors.
		vec := make([]ParsedConfig, reg.NumParsers())
		for i, p := range reg.parsers {
			cfg, perr := p.ParsePerMethodParams(opts, entry)
			vec[i] = cfg
			errs = append(errs, perr)
		}

		nameVal, hasName := entryObj.Get("name")
		if !hasName {
			continue
		}
		patterns, ok := nameVal.AsArray()
		if !ok {
			errs = append(errs, LeafError("field:name error:should be of type array"))
			continue
		}
		for _, pattern := range patterns {
			key, bind, perr := resolutionKey(pattern)
			if perr != nil {
				errs = append(errs, perr)
				continue
			}
			if !bind {
				continue
			}
			if _, dup := sc.methods[key]; dup {
				if key == "" {
					errs = append(errs, LeafError("multiple default method configs"))
				} else {
					errs = append(errs, Errorf("multiple method configs with same name: %s", key))
				}
				continue
			}
			sc.methods[key] = vec
		}
	}
	return errs
}

// resolutionKey maps one {service, method} name pattern to its canonical
// key: "service/method" when both are set, "service/" as the service
// default, and "" as the single global default. Null and empty string both
// mean absent. A method without a service does not form a key and is
// ignored, matching the surrounding schema's laxity.
func resolutionKey(pattern Value) (key string, bind bool, errNode *ErrorNode) {
	obj, ok := pattern.AsObject()
	if !ok {
		return "", false, LeafError("field:name error:elements should be of type object")
	}
	service, errNode := optionalStringField(obj, "service")
	if errNode != nil {
		return "", false, errNode
	}
	method, errNode := optionalStringField(obj, "method")
	if errNode != nil {
		return "", false, errNode
	}
	switch {
	case service == "" && method == "":
		return "", true, nil
	case service == "":
		return "", false, nil
	case method == "":
		return service + "/", true, nil
	default:
		return service + "/" + method, true, nil
	}
}

// optionalStringField reads a string field where null and absence are both
// "unset". Other types are reported, not silently dropped.
func optionalStringField(obj *Object, field string) (string, *ErrorNode) {
	v, ok := obj.Get(field)
	if !ok || v.IsNull() {
		return "", nil
	}
	s, ok := v.AsString()
	if !ok {
		return "", LeafError(fmt.Sprintf("field:name field:%s error:should be of type string", field))
	}
	return s, nil
}
