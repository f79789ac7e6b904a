// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that every required key of the section is defined by some
// layer of chain. Keys are checked in registration order and the first
// missing one is reported.
func (s *Section) validate(chain *Chain) error {
	for _, k := range s.keys {
		if !k.required {
			continue
		}
		if chain.Contains(k.name) {
			continue
		}
		return &MissingKeyError{
			Section: s.name,
			Key:     k.name,
			Flag:    k.flag,
			Env:     k.env,
		}
	}
	return nil
}
