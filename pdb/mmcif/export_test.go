package mmcif

var SplitCifLine = splitCifLine
