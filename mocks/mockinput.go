package mocks

// MockInput hands out canned key names
type MockInput struct {
	Keys   []string
	Break  bool // what BreakCheck reports
	Checks int  // how many times BreakCheck was called
}

func (mi *MockInput) ReadKey() (string, bool) {
	if len(mi.Keys) == 0 {
		return "", false
	}
	key := mi.Keys[0]
	mi.Keys = mi.Keys[1:]
	return key, true
}

func (mi *MockInput) BreakCheck() bool {
	mi.Checks++
	return mi.Break
}
