// seehuhn.de/go/webfont - convert and inspect web font containers
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package name

// appleBCP maps Macintosh language IDs to BCP 47 language tags.
var appleBCP = map[uint16]string{
	0:   "en",
	1:   "fr",
	2:   "de",
	3:   "it",
	4:   "nl",
	5:   "sv",
	6:   "es",
	7:   "da",
	8:   "pt",
	9:   "no",
	10:  "he",
	11:  "ja",
	12:  "ar",
	13:  "fi",
	14:  "el",
	15:  "is",
	16:  "mt",
	17:  "tr",
	18:  "hr",
	19:  "zh-Hant",
	20:  "ur",
	21:  "hi",
	22:  "th",
	23:  "ko",
	24:  "lt",
	25:  "pl",
	26:  "hu",
	27:  "et",
	28:  "lv",
	30:  "fo",
	31:  "fa",
	32:  "ru",
	33:  "zh-Hans",
	34:  "nl-BE",
	35:  "ga",
	36:  "sq",
	37:  "ro",
	38:  "cs",
	39:  "sk",
	40:  "sl",
	41:  "yi",
	42:  "sr",
	43:  "mk",
	44:  "bg",
	45:  "uk",
	46:  "be",
	47:  "uz",
	48:  "kk",
	51:  "hy",
	52:  "ka",
	53:  "ro-MD",
	54:  "ky",
	55:  "tg",
	56:  "tk",
	57:  "mn",
	59:  "ps",
	60:  "ku",
	61:  "ks",
	62:  "sd",
	63:  "bo",
	64:  "ne",
	65:  "sa",
	66:  "mr",
	67:  "bn",
	68:  "as",
	69:  "gu",
	70:  "pa",
	71:  "or",
	72:  "ml",
	73:  "kn",
	74:  "ta",
	75:  "te",
	76:  "si",
	77:  "my",
	78:  "km",
	79:  "lo",
	80:  "vi",
	81:  "id",
	82:  "tl",
	83:  "ms",
	85:  "am",
	86:  "ti",
	87:  "om",
	88:  "so",
	89:  "sw",
	90:  "rw",
	91:  "rn",
	92:  "ny",
	93:  "mg",
	94:  "eo",
	128: "cy",
	129: "eu",
	130: "ca",
	131: "la",
	132: "qu",
	133: "gn",
	134: "ay",
	135: "tt",
	136: "ug",
	137: "dz",
	138: "jv",
	139: "su",
	140: "gl",
	141: "af",
	142: "br",
	143: "iu",
	144: "gd",
	145: "gv",
	146: "ga",
	147: "to",
	148: "el",
	149: "kl",
	150: "az",
}

// msBCP maps Windows language IDs (LCIDs) to BCP 47 language tags.
var msBCP = map[uint16]string{
	0x0401: "ar-SA",
	0x0402: "bg-BG",
	0x0403: "ca-ES",
	0x0404: "zh-TW",
	0x0405: "cs-CZ",
	0x0406: "da-DK",
	0x0407: "de-DE",
	0x0408: "el-GR",
	0x0409: "en-US",
	0x040A: "es-ES",
	0x040B: "fi-FI",
	0x040C: "fr-FR",
	0x040D: "he-IL",
	0x040E: "hu-HU",
	0x040F: "is-IS",
	0x0410: "it-IT",
	0x0411: "ja-JP",
	0x0412: "ko-KR",
	0x0413: "nl-NL",
	0x0414: "nb-NO",
	0x0415: "pl-PL",
	0x0416: "pt-BR",
	0x0418: "ro-RO",
	0x0419: "ru-RU",
	0x041A: "hr-HR",
	0x041B: "sk-SK",
	0x041C: "sq-AL",
	0x041D: "sv-SE",
	0x041E: "th-TH",
	0x041F: "tr-TR",
	0x0420: "ur-PK",
	0x0421: "id-ID",
	0x0422: "uk-UA",
	0x0423: "be-BY",
	0x0424: "sl-SI",
	0x0425: "et-EE",
	0x0426: "lv-LV",
	0x0427: "lt-LT",
	0x0429: "fa-IR",
	0x042A: "vi-VN",
	0x042B: "hy-AM",
	0x042D: "eu-ES",
	0x042F: "mk-MK",
	0x0436: "af-ZA",
	0x0437: "ka-GE",
	0x0438: "fo-FO",
	0x0439: "hi-IN",
	0x043A: "mt-MT",
	0x043E: "ms-MY",
	0x043F: "kk-KZ",
	0x0441: "sw-KE",
	0x0445: "bn-IN",
	0x0446: "pa-IN",
	0x0447: "gu-IN",
	0x0449: "ta-IN",
	0x044A: "te-IN",
	0x044B: "kn-IN",
	0x044C: "ml-IN",
	0x044E: "mr-IN",
	0x0450: "mn-MN",
	0x0452: "cy-GB",
	0x0453: "km-KH",
	0x0454: "lo-LA",
	0x0456: "gl-ES",
	0x045B: "si-LK",
	0x0461: "ne-NP",
	0x0804: "zh-CN",
	0x0807: "de-CH",
	0x0809: "en-GB",
	0x080A: "es-MX",
	0x080C: "fr-BE",
	0x0810: "it-CH",
	0x0813: "nl-BE",
	0x0814: "nn-NO",
	0x0816: "pt-PT",
	0x081A: "sr-Latn-CS",
	0x081D: "sv-FI",
	0x0C04: "zh-HK",
	0x0C07: "de-AT",
	0x0C09: "en-AU",
	0x0C0A: "es-ES",
	0x0C0C: "fr-CA",
	0x0C1A: "sr-Cyrl-CS",
	0x1004: "zh-SG",
	0x1009: "en-CA",
	0x100C: "fr-CH",
	0x1409: "en-NZ",
	0x1809: "en-IE",
	0x2C01: "ar-JO",
}
