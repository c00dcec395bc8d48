// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package chip

var database = []Info{
	// CH56x (configurable SRAM size, data flash)
	{"CH569W", 448 + 32, 16 + 32, 120, "QFN68"},
	{"CH565W", 448 + 32, 16 + 32, 120, "QFN68"},
	{"CH565M", 448 + 32, 16 + 32, 120, "QFN40"},

	// CH57x
	{"CH573X", 448 + 32, 16 + 2, 20, "QFN32"},
	{"CH573F", 448 + 32, 16 + 2, 20, "QFN28"},
	{"CH573Q", 192 + 32, 16 + 2, 20, "LQFP32"},
	{"CH571F", 192 + 32, 16 + 2, 20, "QFN28"},
	{"CH571D", 192 + 32, 16 + 2, 20, "QFN20"},
	{"CH571K", 192 + 32, 16 + 2, 20, "ESSOP10"},

	// CH58x (has +32K data flash)
	{"CH583M", 448 + 32, 32, 20, "QFN48"},
	{"CH582M", 448 + 32, 32, 20, "QFN48"},
	{"CH582F", 448 + 32, 32, 20, "QFN28"},
	{"CH581F", 192 + 32, 32, 20, "QFN28"},

	// CH59x
	{"CH592X", 448 + 32, 26, 20, "QFN32"},
	{"CH592F", 448 + 32, 26, 20, "QFN28"},
	{"CH591F", 192 + 32, 26, 20, "QFN28"},
	{"CH591D", 192 + 32, 26, 20, "QFN20"},

	// CH32V002 / CH32V006
	{"CH32V002F4P6", 16, 4, 48, "TSSOP20"},
	{"CH32V002A4M6", 16, 4, 48, "SOP16"},
	{"CH32V006K8U6", 62, 8, 48, "QFN32"},
	{"CH32V006F8P6", 62, 8, 48, "TSSOP20"},

	// CH32V003
	{"CH32V003F4P6", 16, 2, 48, "TSSOP20"},
	{"CH32V003F4U6", 16, 2, 48, "QFN20"},
	{"CH32V003A4M6", 16, 2, 48, "SOP16"},
	{"CH32V003J4M6", 16, 2, 48, "SOP8"},

	// CH32V103
	{"CH32V103C6T6", 32, 10, 72, "LQFP48"},
	{"CH32V103C8U6", 64, 20, 72, "QFN48"},
	{"CH32V103C8T6", 64, 20, 72, "LQFP48"},
	{"CH32V103R8T6", 64, 20, 72, "LQFP64M"},

	// CH32V203
	{"CH32V203F6T6", 32, 10, 144, "TSSOP20"},
	{"CH32V203F8P6", 64, 20, 144, "TSSOP20"},
	{"CH32V203F8U6", 64, 20, 144, "QFN20X3"},
	{"CH32V203G6U6", 32, 10, 144, "QFN28X4"},
	{"CH32V203G8R6", 64, 20, 144, "QSOP28"},
	{"CH32V203K6T6", 32, 10, 144, "LQFP32"},
	{"CH32V203K8T6", 64, 20, 144, "LQFP32"},
	{"CH32V203C6T6", 32, 10, 144, "LQFP48"},
	{"CH32V203C8T6", 64, 20, 144, "LQFP48"},
	{"CH32V203C8U6", 64, 20, 144, "QFN48X7"},
	{"CH32V203RBT6", 128, 64, 144, "LQFP64M"},

	// CH32V208
	{"CH32V208GBU6", 128, 64, 144, "QFN28X4"},
	{"CH32V208CBU6", 128, 64, 144, "QFN48X5"},
	{"CH32V208RBT6", 128, 64, 144, "LQFP64M"},
	{"CH32V208WBU6", 128, 64, 144, "QFN68X8"},

	// CH32V30x
	{"CH32V303CBT6", 128, 32, 144, "LQFP58"},
	{"CH32V303RBT6", 128, 32, 144, "LQFP64M"},
	{"CH32V303RCT6", 256, 64, 144, "LQFP64M"},
	{"CH32V303VCT6", 256, 64, 144, "LQFP100"},
	{"CH32V305FBP6", 128, 32, 144, "TSSOP20"},
	{"CH32V305RBT6", 128, 32, 144, "LQFP64M"},
	{"CH32V307RCT6", 256, 64, 144, "LQFP64M"},
	{"CH32V307WCU6", 256, 64, 144, "QFN64X8"},
	{"CH32V307VCT6", 256, 64, 144, "LQFP100"},

	// CH32X035
	{"CH32X035R8T6", 62, 20, 48, "LQFP64M"},
	{"CH32X035C8T6", 62, 20, 48, "LQFP48"},
	{"CH32X035F8U6", 62, 20, 48, "QFN20"},
	{"CH32X035G8U6", 62, 20, 48, "QFN28"},
	{"CH32X035F7P6", 48, 20, 48, "TSSOP20"},
	{"CH32X035G8R6", 62, 20, 48, "QSOP28"},

	// CH32L103
	{"CH32L103C8T6", 64, 20, 96, "LQFP48"},
	{"CH32L103F8P6", 64, 20, 96, "TSSOP20"},
	{"CH32L103K8U6", 64, 20, 96, "QFN32"},
	{"CH32L103G8R6", 64, 20, 96, "QSOP28"},
	{"CH32L103F8U6", 64, 20, 96, "QFN20"},
}
