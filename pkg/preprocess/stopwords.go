package preprocess

// Compact stop-word lists. Inflected forms are listed explicitly since no
// lemmatizer runs before the lookup.

var germanStopWords = []string{
	"aber", "alle", "allem", "allen", "aller", "alles", "als", "also", "am", "an",
	"andere", "anderem", "anderen", "anderer", "anderes", "auch", "auf", "aus",
	"bei", "beim", "bin", "bis", "bist", "da", "damit", "dann", "das", "dass",
	"dein", "deine", "dem", "den", "denn", "der", "des", "dessen", "die", "dies",
	"diese", "diesem", "diesen", "dieser", "dieses", "doch", "dort", "du", "durch",
	"ein", "eine", "einem", "einen", "einer", "eines", "er", "es", "etwas", "euer",
	"eure", "für", "gegen", "gewesen", "hab", "habe", "haben", "hat", "hatte",
	"hatten", "hier", "hin", "hinter", "ich", "ihr", "ihre", "im", "in", "ist",
	"ja", "jede", "jedem", "jeden", "jeder", "jedes", "jene", "jenem", "jenen",
	"jener", "jenes", "jetzt", "kann", "kein", "keine", "keinem", "keinen",
	"keiner", "keines", "können", "könnte", "machen", "man", "mein", "meine",
	"mit", "muss", "musste", "nach", "nicht", "nichts", "noch", "nun", "nur",
	"ob", "oder", "ohne", "sehr", "sein", "seine", "sich", "sie", "sind", "so",
	"soll", "sollte", "sondern", "sonst", "über", "um", "und", "uns", "unser",
	"unter", "vom", "von", "vor", "wann", "war", "waren", "warum", "was", "weiter",
	"weitere", "wenn", "wer", "werde", "werden", "wie", "wieder", "will", "wir",
	"wird", "wirst", "wo", "wollen", "wollte", "während", "würde", "würden", "zu",
	"zum", "zur", "zwar", "zwischen",
}

var englishStopWords = []string{
	"a", "about", "above", "after", "again", "all", "am", "an", "and", "any",
	"are", "as", "at", "be", "because", "been", "before", "being", "below",
	"between", "both", "but", "by", "can", "did", "do", "does", "doing", "down",
	"during", "each", "few", "for", "from", "further", "had", "has", "have",
	"having", "he", "her", "here", "hers", "him", "his", "how", "i", "if", "in",
	"into", "is", "it", "its", "just", "me", "more", "most", "my", "no", "nor",
	"not", "now", "of", "off", "on", "once", "only", "or", "other", "our",
	"ours", "out", "over", "own", "same", "she", "should", "so", "some", "such",
	"than", "that", "the", "their", "theirs", "them", "then", "there", "these",
	"they", "this", "those", "through", "to", "too", "under", "until", "up",
	"very", "was", "we", "were", "what", "when", "where", "which", "while",
	"who", "whom", "why", "will", "with", "you", "your", "yours",
}
