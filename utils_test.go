package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpacePascalCase(t *testing.T) {
	tests := []struct {
		testName string
		name     string
		want     string
	}{
		{testName: "", name: "", want: ""},
		{testName: "HelloWorld", name: "HelloWorld", want: "Hello World"},
		{testName: "_Hello_World", name: "_Hello_World", want: "Hello World"},
		{testName: "helloWorld", name: "helloWorld", want: "hello World"},
		{testName: "created_at", name: "created_at", want: "created at"},
		{testName: "ThisHasMore_Spaces__ForSure", name: "ThisHasMore_Spaces__ForSure", want: "This Has More Spaces For Sure"},
	}
	for _, tt := range tests {
		t.Run(tt.testName, func(t *testing.T) {
			if got := SpacePascalCase(tt.name); got != tt.want {
				t.Errorf("SpacePascalCase() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsNil(t *testing.T) {
	var (
		nilPtr   *int
		nilSlice []string
		nilMap   map[string]int
		num      = 1
	)
	assert.True(t, IsNil(nil))
	assert.True(t, IsNil(nilPtr))
	assert.True(t, IsNil(nilSlice))
	assert.True(t, IsNil(nilMap))
	assert.True(t, IsNil(struct{}{}))
	assert.False(t, IsNil(0))
	assert.False(t, IsNil(""))
	assert.False(t, IsNil(&num))
}

func TestDeref(t *testing.T) {
	num := 7
	ptr := &num
	assert.Equal(t, 7, Deref(&num))
	assert.Equal(t, 7, Deref(&ptr))
	assert.Equal(t, "x", Deref("x"))
	assert.Nil(t, Deref(nil))
	var nilPtr *int
	assert.Equal(t, nilPtr, Deref(nilPtr))
}
