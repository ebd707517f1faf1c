/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
Each bucket contains only one type of object. It has a
primary index (which may be composite), which is stored
as the key of the bucket entry. The bucket value is the
serialized model.

Sequence provides monotonically increasing keys that sort
the same way as the integers they represent. Buckets use a
sequence to generate keys when none is given.

Every bucket can register a query handler exposing its raw
content by exact key or by key prefix.
*/
package orm
