package envfile

// Merge combines a live file with its example.
//
// Every live record is kept, in live order, with its value untouched. Keys
// only the example has are appended with an empty value. Required, Type and
// Description always come from the example, on every occurrence of a key.
// Neither input is modified. The result has the live path and no lines; a
// formatted write must supply its own template.
func Merge(live, example *File) *File {
	merged := &File{
		Path:    live.Path,
		Records: make([]Record, len(live.Records), len(live.Records)+len(example.Records)),
	}
	copy(merged.Records, live.Records)

	index := make(map[string][]int, len(merged.Records))
	for i, r := range merged.Records {
		index[r.Key] = append(index[r.Key], i)
	}

	for _, ex := range example.Records {
		positions, ok := index[ex.Key]
		if !ok {
			merged.Records = append(merged.Records, Record{
				Key:         ex.Key,
				Required:    ex.Required,
				Type:        ex.Type,
				Description: ex.Description,
			})
			index[ex.Key] = []int{len(merged.Records) - 1}
			continue
		}
		for _, i := range positions {
			merged.Records[i].Required = ex.Required
			merged.Records[i].Type = ex.Type
			merged.Records[i].Description = ex.Description
		}
	}
	return merged
}
