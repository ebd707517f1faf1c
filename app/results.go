package app

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// EncodeResults splits query results into the Key and Value fields of an
// abci query response. Both hold a ResultSet with one entry per model.
func EncodeResults(models []timelock.Model) (keys, values []byte, err error) {
	var k, v ResultSet
	for _, m := range models {
		k.Results = append(k.Results, m.Key)
		v.Results = append(v.Results, m.Value)
	}
	if keys, err = k.Marshal(); err != nil {
		return nil, nil, errors.Wrap(err, "keys")
	}
	if values, err = v.Marshal(); err != nil {
		return nil, nil, errors.Wrap(err, "values")
	}
	return keys, values, nil
}

// DecodeResults is the client side of EncodeResults.
func DecodeResults(keys, values []byte) ([]timelock.Model, error) {
	var k, v ResultSet
	if err := k.Unmarshal(keys); err != nil {
		return nil, errors.Wrap(errors.ErrModel, "result keys")
	}
	if err := v.Unmarshal(values); err != nil {
		return nil, errors.Wrap(errors.ErrModel, "result values")
	}
	if len(k.Results) != len(v.Results) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys for %d values", len(k.Results), len(v.Results))
	}
	models := make([]timelock.Model, len(k.Results))
	for i := range models {
		models[i] = timelock.Pair(k.Results[i], v.Results[i])
	}
	return models, nil
}
