/*
 * Copyright 2024 The Sealgate Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package static

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sealgate/sealgate/pkg/errors"
)

// loadUsersFile loads a credentials manifest from disk. Files ending in
// .csv are parsed as two-column username,credential records with a header
// row; anything else is parsed as htpasswd-style username:credential lines.
func loadUsersFile(path string) (map[string]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return loadCSV(path)
	}
	return loadHtpasswd(path)
}

func loadHtpasswd(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrInvalidUsersFile, path)
	}
	defer f.Close()
	out := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		username, credential, ok := strings.Cut(line, ":")
		if !ok || username == "" {
			return nil, fmt.Errorf("%w: %s", errors.ErrInvalidUsersFile,
				path)
		}
		out[username] = credential
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func loadCSV(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrInvalidUsersFile, path)
	}
	defer f.Close()
	matrix, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(matrix))
	for i, row := range matrix {
		// row 0 is the header
		if i == 0 || len(row) < 2 {
			continue
		}
		out[strings.TrimSpace(row[0])] = strings.TrimSpace(row[1])
	}
	return out, nil
}
