package hbond

// ModelOf makes a model from ready made records.
func ModelOf(recs []Record) *Model { return &Model{recs: recs, strategy: Direct} }

// TopTwo pushes partners one after the other into an empty list.
func TopTwo(ps ...Partner) ([2]Partner, int) {
	var lst [2]Partner
	var n int
	for _, p := range ps {
		add(&lst, &n, p)
	}
	return lst, n
}
