package export

// MapSlice is an ordered YAML mapping. Types whose natural Go shape
// is a map implement yaml.Marshaler and return a MapSlice so the
// exporter never depends on Go map iteration order.
type MapSlice []MapItem

// MapItem is a single key/value entry of a MapSlice.
type MapItem struct {
	Key   string
	Value any
}
