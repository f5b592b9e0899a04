package fuzzy

// Physical-adjacency tables for the supported keyboard layouts. A mistyped
// character is most often one of its neighbours on the physical keyboard.
var keyboardAdjacency = map[string]map[rune][]rune{
	"qwerty": {
		'q': {'w', 'a', 's'},
		'w': {'q', 'e', 'a', 's', 'd'},
		'e': {'w', 'r', 's', 'd', 'f'},
		'r': {'e', 't', 'd', 'f', 'g'},
		't': {'r', 'y', 'f', 'g', 'h'},
		'y': {'t', 'u', 'g', 'h', 'j'},
		'u': {'y', 'i', 'h', 'j', 'k'},
		'i': {'u', 'o', 'j', 'k', 'l'},
		'o': {'i', 'p', 'k', 'l'},
		'p': {'o', 'l'},
		'a': {'q', 'w', 's', 'z', 'x'},
		's': {'a', 'd', 'w', 'e', 'z', 'x', 'c'},
		'd': {'s', 'f', 'e', 'r', 'x', 'c', 'v'},
		'f': {'d', 'g', 'r', 't', 'c', 'v', 'b'},
		'g': {'f', 'h', 't', 'y', 'v', 'b', 'n'},
		'h': {'g', 'j', 'y', 'u', 'b', 'n', 'm'},
		'j': {'h', 'k', 'u', 'i', 'n', 'm'},
		'k': {'j', 'l', 'i', 'o', 'm'},
		'l': {'k', 'o', 'p', 'm'},
		'z': {'a', 's', 'x'},
		'x': {'z', 'c', 's', 'd'},
		'c': {'x', 'v', 'd', 'f'},
		'v': {'c', 'b', 'f', 'g'},
		'b': {'v', 'n', 'g', 'h'},
		'n': {'b', 'm', 'h', 'j'},
		'm': {'n', 'j', 'k'},
	},
	"azerty": {
		'a': {'z', 'q', 's'},
		'z': {'a', 'e', 'q', 's', 'd'},
		'e': {'z', 'r', 's', 'd', 'f'},
		'r': {'e', 't', 'd', 'f', 'g'},
		't': {'r', 'y', 'f', 'g', 'h'},
		'y': {'t', 'u', 'g', 'h', 'j'},
		'u': {'y', 'i', 'h', 'j', 'k'},
		'i': {'u', 'o', 'j', 'k', 'l'},
		'o': {'i', 'p', 'k', 'l', 'm'},
		'p': {'o', 'l', 'm'},
		'q': {'a', 'z', 's', 'w', 'x'},
		's': {'q', 'd', 'z', 'e', 'w', 'x', 'c'},
		'd': {'s', 'f', 'e', 'r', 'x', 'c', 'v'},
		'f': {'d', 'g', 'r', 't', 'c', 'v', 'b'},
		'g': {'f', 'h', 't', 'y', 'v', 'b', 'n'},
		'h': {'g', 'j', 'y', 'u', 'b', 'n'},
		'j': {'h', 'k', 'u', 'i', 'n'},
		'k': {'j', 'l', 'i', 'o'},
		'l': {'k', 'm', 'o', 'p'},
		'm': {'l', 'p', 'o'},
		'w': {'q', 's', 'x'},
		'x': {'w', 'c', 's', 'd'},
		'c': {'x', 'v', 'd', 'f'},
		'v': {'c', 'b', 'f', 'g'},
		'b': {'v', 'n', 'g', 'h'},
		'n': {'b', 'h', 'j'},
	},
	"qwertz": {
		'q': {'w', 'a', 's'},
		'w': {'q', 'e', 'a', 's', 'd'},
		'e': {'w', 'r', 's', 'd', 'f'},
		'r': {'e', 't', 'd', 'f', 'g'},
		't': {'r', 'z', 'f', 'g', 'h'},
		'z': {'t', 'u', 'g', 'h', 'j'},
		'u': {'z', 'i', 'h', 'j', 'k'},
		'i': {'u', 'o', 'j', 'k', 'l'},
		'o': {'i', 'p', 'k', 'l'},
		'p': {'o', 'l'},
		'a': {'q', 'w', 's', 'y', 'x'},
		's': {'a', 'd', 'w', 'e', 'y', 'x', 'c'},
		'd': {'s', 'f', 'e', 'r', 'x', 'c', 'v'},
		'f': {'d', 'g', 'r', 't', 'c', 'v', 'b'},
		'g': {'f', 'h', 't', 'z', 'v', 'b', 'n'},
		'h': {'g', 'j', 'z', 'u', 'b', 'n', 'm'},
		'j': {'h', 'k', 'u', 'i', 'n', 'm'},
		'k': {'j', 'l', 'i', 'o', 'm'},
		'l': {'k', 'o', 'p', 'm'},
		'y': {'a', 's', 'x'},
		'x': {'y', 'c', 's', 'd'},
		'c': {'x', 'v', 'd', 'f'},
		'v': {'c', 'b', 'f', 'g'},
		'b': {'v', 'n', 'g', 'h'},
		'n': {'b', 'm', 'h', 'j'},
		'm': {'n', 'j', 'k'},
	},
}

// Accent variants per base letter. Both directions are generated: folding an
// accented letter to its base and unfolding a base letter to its accented
// forms.
var accentVariants = map[rune][]rune{
	'a': {'à', 'â', 'á', 'ä', 'ã', 'å'},
	'e': {'é', 'è', 'ê', 'ë'},
	'i': {'î', 'ï', 'í', 'ì'},
	'o': {'ô', 'ö', 'ó', 'ò', 'õ', 'ø'},
	'u': {'ù', 'û', 'ü', 'ú'},
	'c': {'ç'},
	'n': {'ñ'},
	'y': {'ÿ'},
	's': {'ß'},
}

// Extended alphabets used for substitution and insertion variants.
var languageAlphabets = map[string][]rune{
	"en": []rune("abcdefghijklmnopqrstuvwxyz"),
	"fr": []rune("abcdefghijklmnopqrstuvwxyzàâçéèêëîïôùûüÿ"),
	"es": []rune("abcdefghijklmnopqrstuvwxyzáéíñóúü"),
	"de": []rune("abcdefghijklmnopqrstuvwxyzäöüß"),
	"it": []rune("abcdefghijklmnopqrstuvwxyzàèéìòù"),
	"pt": []rune("abcdefghijklmnopqrstuvwxyzáâãàçéêíóôõú"),
}

func alphabetFor(langCode string) []rune {
	if alpha, ok := languageAlphabets[langCode]; ok {
		return alpha
	}
	return languageAlphabets["en"]
}

func adjacencyFor(layout string) map[rune][]rune {
	if adj, ok := keyboardAdjacency[layout]; ok {
		return adj
	}
	return keyboardAdjacency["qwerty"]
}
