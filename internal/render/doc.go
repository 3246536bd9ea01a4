// Package render draws a session outside the browser: a standalone echarts
// HTML page of a snapshot, and a terminal renderer that prints playback as it
// happens.
package render
