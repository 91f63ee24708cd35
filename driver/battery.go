package driver

// Case is one fixed test input for cross-validating the three engines:
// starting value n (as a decimal string, to avoid a monstrous integer
// literal in source) and the expected even/odd step counts.
type Case struct {
	Name string
	N    string
	Evn  uint64
	Odd  uint64
}

// Battery returns the fixed battery of test cases the harness cross-checks
// all three engines against.
func Battery() []Case {
	return []Case{
		{"n=3", "3", 5, 2},
		{"n=765432", "765432", 107, 55},
		{"n=32860794781696", "32860794781696", 61, 10},
		{"n=3287505407311872", "3287505407311872", 139, 55},
		{"n=420800692135919616", "420800692135919616", 146, 55},
		{"n=970300334233894087246424527897362432", "970300334233894087246424527897362432", 207, 55},
		{"n=645643565437415345345235535462318313342346", "645643565437415345345235535462318313342346", 605, 294},
		{
			"n=156243863292978154974121315437405326167310717681664",
			"156243863292978154974121315437405326167310717681664",
			438, 171,
		},
		{
			"n=156243863292978154974121315437405326167310717681665",
			"156243863292978154974121315437405326167310717681665",
			1034, 547,
		},
		{
			"n=7457634543564564356543765868989546221123415345345235",
			"7457634543564564356543765868989546221123415345345235",
			732, 353,
		},
	}
}
