package manifest

// Sample returns the starter manifest: a formatter, a spell checker and a
// style linter, each pinned to a fixed revision.
func Sample() *Config {
	return &Config{
		Repos: []Repo{
			{
				Repo: "https://github.com/psf/black",
				Rev:  "21.12b0",
				Hooks: []Hook{
					{ID: "black"},
				},
			},
			{
				Repo: "https://github.com/codespell-project/codespell",
				Rev:  "v2.1.0",
				Hooks: []Hook{
					{
						ID: "codespell",
						Args: []string{
							"--ignore-words-list=hist,nd,ot,thre,vart",
							"--skip=*.ipynb",
						},
					},
				},
			},
			{
				Repo: "https://github.com/PyCQA/flake8",
				Rev:  "4.0.1",
				Hooks: []Hook{
					{
						ID: "flake8",
						Args: []string{
							"--max-line-length=88",
							"--extend-ignore=E203",
						},
						Files: "^src/",
					},
				},
			},
		},
	}
}
