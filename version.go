package medihub

import "fmt"

// Version represents the version of MediHub.
type Version struct {
	Major uint8
	Minor uint8
	Patch uint8
	Meta  string
}

var version = Version{
	Major: 0,
	Minor: 3,
	Patch: 0,
	Meta:  "beta",
}

func StringVersion() string {
	v := fmt.Sprintf("%d.%d.%d", version.Major, version.Minor, version.Patch)

	if version.Meta != "" {
		v = fmt.Sprintf("%s-%s", v, version.Meta)
	}

	return v
}
