// Copyright 2023 Paolo Fabio Zaino
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

import (
	"reflect"
	"testing"
)

func TestSplitCSV(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"   ", nil},
		{"a", []string{"a"}},
		{" a, ,b ", []string{"a", "b"}},
		{"./testdata/*.txt,./more/*.txt", []string{"./testdata/*.txt", "./more/*.txt"}},
	}

	for _, tt := range tests {
		result := SplitCSV(tt.input)
		if !reflect.DeepEqual(result, tt.expected) {
			t.Errorf("SplitCSV(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}
