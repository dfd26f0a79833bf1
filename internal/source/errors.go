// Copyright (c) 2024 Neomantra Corp

package source

import "fmt"

func unexpectedJSONShapeError(kind string) error {
	return fmt.Errorf("itch: json line missing or unrecognized kind %q", kind)
}
