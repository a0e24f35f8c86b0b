// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package web

import (
	"io/fs"
	"testing"
)

func TestStaticContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(Static(), "agora.css")
	if err != nil {
		t.Fatalf("read agora.css: %v", err)
	}
	if len(data) == 0 {
		t.Error("agora.css is empty")
	}
}
