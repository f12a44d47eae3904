//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package headers recognizes executable file headers so the host can report
// what kind of file was opened.
package headers

import (
	"bytes"
	"debug/elf"
	"debug/macho"
	"debug/pe"
)

// Info summarizes an executable header.
type Info struct {
	Format       string
	Architecture string
	Bitness      int
	EntryPoint   uint64
	Sections     []string
}

// Detect inspects the first bytes of data for a known executable format.
// The second result is false when no header is recognized.
func Detect(data []byte) (*Info, bool) {
	if len(data) < 4 {
		return nil, false
	}
	if info := detectELF(data); info != nil {
		return info, true
	}
	if info := detectPE(data); info != nil {
		return info, true
	}
	if info := detectMachO(data); info != nil {
		return info, true
	}
	return nil, false
}

func detectELF(data []byte) *Info {
	if !bytes.HasPrefix(data, []byte{0x7f, 'E', 'L', 'F'}) {
		return nil
	}
	f, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	defer f.Close()
	info := &Info{
		Format:       "ELF",
		Architecture: f.Machine.String(),
		Bitness:      32,
		EntryPoint:   f.Entry,
	}
	if f.Class == elf.ELFCLASS64 {
		info.Bitness = 64
	}
	for _, section := range f.Sections {
		if section.Name != "" {
			info.Sections = append(info.Sections, section.Name)
		}
	}
	return info
}

func detectPE(data []byte) *Info {
	if !bytes.HasPrefix(data, []byte{'M', 'Z'}) {
		return nil
	}
	f, err := pe.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	defer f.Close()
	info := &Info{Format: "PE"}
	switch f.Machine {
	case pe.IMAGE_FILE_MACHINE_AMD64:
		info.Architecture = "x86-64"
	case pe.IMAGE_FILE_MACHINE_I386:
		info.Architecture = "x86"
	case pe.IMAGE_FILE_MACHINE_ARM64:
		info.Architecture = "arm64"
	default:
		info.Architecture = "unknown"
	}
	switch header := f.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		info.Bitness = 32
		info.EntryPoint = uint64(header.ImageBase) + uint64(header.AddressOfEntryPoint)
	case *pe.OptionalHeader64:
		info.Bitness = 64
		info.EntryPoint = header.ImageBase + uint64(header.AddressOfEntryPoint)
	}
	for _, section := range f.Sections {
		info.Sections = append(info.Sections, section.Name)
	}
	return info
}

func detectMachO(data []byte) *Info {
	f, err := macho.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	defer f.Close()
	info := &Info{
		Format:       "Mach-O",
		Architecture: f.Cpu.String(),
		Bitness:      32,
	}
	if f.Magic == macho.Magic64 {
		info.Bitness = 64
	}
	for _, section := range f.Sections {
		info.Sections = append(info.Sections, section.Name)
	}
	return info
}
