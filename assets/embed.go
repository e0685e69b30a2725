package assets

import (
	"embed"
)

//go:embed build/*
var Static embed.FS

//go:embed robots.txt
var RobotsTxt string
