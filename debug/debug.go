package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse  bool
	Format bool
	IO     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("FSAVE_DEBUG_PARSE")
	d.Format = boolEnv("FSAVE_DEBUG_FORMAT")
	d.IO = boolEnv("FSAVE_DEBUG_IO")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Format() bool {
	return d.Format
}
func IO() bool {
	return d.IO
}
