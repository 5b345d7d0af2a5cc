package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hearstOSM = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
 <node id="1" lat="37.8735" lon="-122.2640"/>
 <node id="2" lat="37.8735" lon="-122.2620"/>
 <node id="3" lat="37.8735" lon="-122.2600"/>
 <node id="4" lat="37.8760" lon="-122.2600"/>
 <way id="10">
  <nd ref="1"/>
  <nd ref="2"/>
  <nd ref="3"/>
  <tag k="highway" v="secondary"/>
  <tag k="name" v="Hearst Avenue"/>
 </way>
 <way id="11">
  <nd ref="3"/>
  <nd ref="4"/>
  <tag k="highway" v="residential"/>
  <tag k="name" v="Le Roy Avenue"/>
 </way>
</osm>`

func TestRouteCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hearst.osm")
	require.NoError(t, os.WriteFile(path, []byte(hearstOSM), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"route", "-f", path, "--log-level", "error", "--",
		"-122.2641", "37.8736", "-122.2600", "37.8761"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "1. Start on Hearst Avenue and continue for ")
	// heading timur (~90) lalu utara (0): jumlah bearing ~90
	assert.Contains(t, out.String(), "2. Turn right on Le Roy Avenue and continue for ")
	assert.Contains(t, out.String(), "4 vertices")
}
