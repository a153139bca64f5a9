package query

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// Op is a comparison operator a client can attach to a filter key,
// e.g. ?rating[gte]=4 or ?category[in]=water,education.
type Op string

const (
	OpEq  Op = "eq"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
	OpIn  Op = "in"
)

// Condition is one typed filter expression. Serializing through a typed
// triple instead of rewriting the raw query string keeps the store's
// operator syntax out of the client contract.
type Condition struct {
	Field string
	Op    Op
	Value any
}

// Eq builds an equality condition.
func Eq(field string, value any) Condition { return Condition{Field: field, Op: OpEq, Value: value} }

var keyWithOp = regexp.MustCompile(`^([^\[\]]+)\[([a-z]+)\]$`)

func parseOp(s string) (Op, bool) {
	switch Op(s) {
	case OpGt, OpGte, OpLt, OpLte, OpIn:
		return Op(s), true
	}
	return "", false
}

// coerce turns a raw query-string value into the type the store should
// compare against: integers, floats and booleans when they parse, raw
// strings otherwise.
func coerce(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// parseConditions extracts filter conditions from query values, skipping
// reserved keys. A key of the form field[op] with a known operator becomes
// a comparison; anything else is an equality match on the literal key.
func parseConditions(values url.Values) []Condition {
	var conds []Condition
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		raw := vals[0]

		field, opName := key, ""
		if m := keyWithOp.FindStringSubmatch(key); m != nil {
			field, opName = m[1], m[2]
		}
		if _, reserved := reservedKeys[field]; reserved {
			continue
		}

		op, known := parseOp(opName)
		if opName == "" || !known {
			conds = append(conds, Eq(key, coerce(raw)))
			continue
		}
		if op == OpIn {
			parts := strings.Split(raw, ",")
			members := make(bson.A, 0, len(parts))
			for _, p := range parts {
				members = append(members, coerce(p))
			}
			conds = append(conds, Condition{Field: field, Op: op, Value: members})
			continue
		}
		conds = append(conds, Condition{Field: field, Op: op, Value: coerce(raw)})
	}
	return conds
}

// toFilter serializes conditions to the store's native query form,
// merging multiple operators on the same field into one document.
func toFilter(conds []Condition) bson.M {
	filter := bson.M{}
	for _, c := range conds {
		if c.Op == OpEq {
			filter[c.Field] = c.Value
			continue
		}
		doc, ok := filter[c.Field].(bson.M)
		if !ok {
			doc = bson.M{}
			filter[c.Field] = doc
		}
		doc["$"+string(c.Op)] = c.Value
	}
	return filter
}
