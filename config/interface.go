/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package config loads the server identity from a properties style file
// ("key = value" lines). Unknown keys are ignored so existing configuration
// files keep parsing when new optional keys appear.
package config

import (
	liberr "github.com/nabbar/golib/errors"
	spfvpr "github.com/spf13/viper"
)

const (
	// DefaultConfigFile is the configuration path used when no -c flag is
	// given.
	DefaultConfigFile = "server.cfg"

	// DefaultControllersFile is the allow-list path used when no -u flag
	// is given.
	DefaultControllersFile = "controllers.dat"
)

// New reads and validates the server configuration at the given path.
func New(path string) (*Config, liberr.Error) {
	if path == "" {
		return nil, ErrorParamEmpty.Error(nil)
	}

	v := spfvpr.New()
	v.SetConfigFile(path)
	v.SetConfigType("properties")

	v.SetDefault("Data-dir", ".")

	if err := v.ReadInConfig(); err != nil {
		return nil, ErrorFileRead.Error(err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ErrorFileParse.Error(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
