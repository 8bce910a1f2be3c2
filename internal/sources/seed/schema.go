package seed

// File is the top-level structure of a seed file.
//
//	reels:
//	  - link: https://instagram.com/reel/abc
//	    keyword: guide
//	    reward: https://example.com/guide.pdf
//	    status: active
type File struct {
	Reels []Entry `yaml:"reels"`
}

// Entry is one reel to import. Status is optional and defaults to active.
type Entry struct {
	Link    string `yaml:"link"`
	Keyword string `yaml:"keyword"`
	Reward  string `yaml:"reward,omitempty"`
	Status  string `yaml:"status,omitempty"`
}
