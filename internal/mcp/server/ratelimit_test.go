// Copyright 2025 Tom Barlow
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

package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_WriteBucketExhausts(t *testing.T) {
	rl := NewRateLimiter(2, 100)

	assert.True(t, rl.AllowWrite())
	assert.True(t, rl.AllowWrite())
	assert.False(t, rl.AllowWrite(), "third write within the window must be denied")

	// The call bucket is independent of the write bucket.
	assert.True(t, rl.AllowCall())
}

func TestRateLimiter_CallBucketExhausts(t *testing.T) {
	rl := NewRateLimiter(10, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.AllowCall(), "call %d should be allowed", i)
	}
	assert.False(t, rl.AllowCall())
}

func TestRateLimiter_ZeroDeniesEverything(t *testing.T) {
	rl := NewRateLimiter(0, 0)
	assert.False(t, rl.AllowWrite())
	assert.False(t, rl.AllowCall())
}
